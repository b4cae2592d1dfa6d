// ABOUTME: Tests for dashboard widgets
// ABOUTME: Covers status mapping, card geometry, bars, and sparklines

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/abhinavhh/hotel-booking-client/internal/tui/icons"
)

func TestBookingLevel(t *testing.T) {
	tests := []struct {
		status string
		want   StatusLevel
	}{
		{"Confirmed", StatusOK},
		{"pending", StatusWarning},
		{"Cancelled", StatusCritical},
		{"Completed", StatusInfo},
		{"Unknown", StatusNeutral},
		{"", StatusNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := BookingLevel(tt.status); got != tt.want {
				t.Errorf("BookingLevel(%q) = %d, want %d", tt.status, got, tt.want)
			}
		})
	}
}

func TestPaymentLevel(t *testing.T) {
	if PaymentLevel("Paid") != StatusOK {
		t.Error("expected Paid to be OK")
	}
	if PaymentLevel("Refunded") != StatusInfo {
		t.Error("expected Refunded to be Info")
	}
	if PaymentLevel("") != StatusNeutral {
		t.Error("expected empty payment status to be neutral")
	}
}

func TestStatusBadge(t *testing.T) {
	if !strings.Contains(StatusBadge("Confirmed"), "Confirmed") {
		t.Error("expected badge to carry the status text")
	}
	if !strings.Contains(StatusBadge(""), "--") {
		t.Error("expected placeholder for empty status")
	}
}

func TestStatCardWidth(t *testing.T) {
	icons.SetNerdFonts(false)
	config := DefaultCardConfig()
	config.Width = 30

	out := StatCard(icons.Money, "Total Spent", "$1,234.00", "across all stays", config)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d width = %d, want 30: %q", i, w, line)
		}
	}
	if !strings.Contains(out, "Total Spent") || !strings.Contains(out, "$1,234.00") {
		t.Errorf("expected title and value in card:\n%s", out)
	}
}

func TestStatCardTruncatesLongCaption(t *testing.T) {
	icons.SetNerdFonts(false)
	config := DefaultCardConfig()
	config.Width = 16

	out := StatCard(icons.Hotel, "Stays", "3", "a caption that is far too long", config)
	if !strings.Contains(out, "...") {
		t.Errorf("expected ellipsis in truncated caption:\n%s", out)
	}
}

func TestStatCardWithBar(t *testing.T) {
	icons.SetNerdFonts(false)
	out := StatCardWithBar(icons.Cancel, "Cancelled", 25, "1 of 4", lipgloss.Color("#EF4444"), DefaultCardConfig())
	if !strings.Contains(out, "25%") {
		t.Errorf("expected percentage in card:\n%s", out)
	}
	if !strings.Contains(out, "▓") {
		t.Errorf("expected filled bar segment:\n%s", out)
	}
}

func TestCompactProgressBar(t *testing.T) {
	bar := CompactProgressBar(50, 10, lipgloss.Color("#10B981"))
	if w := lipgloss.Width(bar); w != 10 {
		t.Errorf("expected width 10, got %d", w)
	}
	if strings.Count(bar, "▓") != 5 {
		t.Errorf("expected 5 filled cells, got %q", bar)
	}

	if strings.Count(CompactProgressBar(150, 10, ""), "▓") != 10 {
		t.Error("expected percent above 100 to clamp")
	}
}

func TestStepBar(t *testing.T) {
	bar := StepBar(2, 4, 20, lipgloss.Color("#2563EB"))
	if strings.Count(bar, "━") != 10 {
		t.Errorf("expected half the bar filled, got %q", bar)
	}
	if StepBar(1, 0, 20, "") != "" {
		t.Error("expected empty bar with no steps")
	}
}

func TestPercent(t *testing.T) {
	if Percent(1, 4) != 25 {
		t.Errorf("expected 25, got %v", Percent(1, 4))
	}
	if Percent(3, 0) != 0 {
		t.Error("expected 0 when whole is 0")
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{1, 2, 3, 4}, 4, "")
	if []rune(out)[0] != SparklineBlocks[0] {
		t.Errorf("expected lowest block first, got %q", out)
	}
	if []rune(out)[3] != SparklineBlocks[len(SparklineBlocks)-1] {
		t.Errorf("expected highest block last, got %q", out)
	}
	if Sparkline(nil, 4, "") != "" {
		t.Error("expected empty sparkline for no values")
	}
}

func TestSampleValues(t *testing.T) {
	padded := sampleValues([]float64{5, 6}, 4)
	if padded[0] != 0 || padded[1] != 0 || padded[2] != 5 || padded[3] != 6 {
		t.Errorf("expected zero padding in front, got %v", padded)
	}

	sampled := sampleValues([]float64{1, 2, 3, 4, 5, 6}, 3)
	if len(sampled) != 3 || sampled[0] != 1 {
		t.Errorf("unexpected sampled values %v", sampled)
	}
}

func TestRatingStars(t *testing.T) {
	out := RatingStars(4.4)
	if strings.Count(out, "★") != 4 || !strings.Contains(out, "4.4") {
		t.Errorf("unexpected stars %q", out)
	}
}

func TestMoney(t *testing.T) {
	if got := Money(1040); got != "$1040.00" {
		t.Errorf("Money() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Grand Palace Madrid", 10); got != "Grand P..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("Inn", 10); got != "Inn" {
		t.Errorf("Truncate() = %q", got)
	}
}
