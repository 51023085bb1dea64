package controller

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAmountFormatting(t *testing.T) {
	tests := []struct {
		in      string
		grouped string
		signed  string
	}{
		{"3287.42", "3,287.42", "+$3287.42"},
		{"12045.13", "12,045.13", "+$12045.13"},
		{"-54.23", "-54.23", "-$54.23"},
		{"2300", "2,300.00", "+$2300.00"},
		{"1234567.5", "1,234,567.50", "+$1234567.50"},
		{"0", "0.00", "+$0.00"},
		{"-1000", "-1,000.00", "-$1000.00"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := grouped(d); got != tt.grouped {
			t.Errorf("grouped(%s) = %q, want %q", tt.in, got, tt.grouped)
		}
		if got := signed(d); got != tt.signed {
			t.Errorf("signed(%s) = %q, want %q", tt.in, got, tt.signed)
		}
	}
}

func TestPageIntervals(t *testing.T) {
	c := &PageController{opts: PageOptions{Timeout: 5 * time.Minute}}
	if got := c.pingThrottle(); got != 30*time.Second {
		t.Errorf("ping throttle = %v", got)
	}
	if got := c.pollInterval(); got != 30*time.Second {
		t.Errorf("poll interval = %v", got)
	}

	c.opts.Timeout = 2 * time.Second
	if got := c.pingThrottle(); got != time.Second {
		t.Errorf("short ping throttle = %v", got)
	}
}
