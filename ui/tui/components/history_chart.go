package components

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"simsiac/ui/tui/styles"
)

// HistoryChart draws the recent values of one probe as a braille line.
type HistoryChart struct {
	Chart    linechart.Model
	Title    string
	History  []float64
	Capacity int
	Width    int
	Height   int
}

var _ Component = (*HistoryChart)(nil)

func NewHistoryChart(width, height, capacity int) *HistoryChart {
	return &HistoryChart{
		Chart:    linechart.New(width, height, 0, float64(capacity-1), 0, 100),
		Capacity: capacity,
		Width:    width,
		Height:   height,
	}
}

func (c *HistoryChart) Init() tea.Cmd {
	return nil
}

// SetSeries replaces the plotted values.
func (c *HistoryChart) SetSeries(title string, values []float64) {
	c.Title = title
	c.History = values
	if len(c.History) > c.Capacity {
		c.History = c.History[len(c.History)-c.Capacity:]
	}
}

func (c *HistoryChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

func (c *HistoryChart) Resize(w, h int) {
	c.Width = w
	c.Height = h
}

// maxY is 100 for percentages and grows for unbounded probes such as load.
func (c *HistoryChart) maxY() float64 {
	top := 100.0
	for _, v := range c.History {
		if v*1.2 > top {
			top = v * 1.2
		}
	}
	return top
}

func (c *HistoryChart) View() string {
	c.Chart = linechart.New(c.Width, c.Height, 0, float64(c.Capacity-1), 0, c.maxY())
	for i := 0; i < len(c.History)-1; i++ {
		c.Chart.DrawBrailleLine(
			canvas.Float64Point{X: float64(i), Y: c.History[i]},
			canvas.Float64Point{X: float64(i + 1), Y: c.History[i+1]},
		)
	}
	c.Chart.DrawXYAxisAndLabel()

	title := c.Title
	if title == "" {
		title = "no probe yet"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(styles.BrandColor).Render(title+" history"),
		c.Chart.View(),
	)
}
