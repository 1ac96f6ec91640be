// Package live renders a terminal view of descriptor estimates over a
// sliding window of a generated stream.
package live

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nld/internal/nld"
	"github.com/san-kum/nld/internal/series"
)

const (
	historyCapacity = 240
	bufferSeconds   = 120
	graphWidth      = 70
	graphHeight     = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type TickMsg time.Time

// Model holds the stream buffer, the sliding window position, and the
// descriptor history.
type Model struct {
	est    *nld.Estimator
	signal string
	buffer series.TimeSeries
	window int
	step   int
	pos    int

	running    bool
	features   nld.Features
	lambdaHist []float64
	alphaHist  []float64
	frameRate  int
}

// NewModel pre-generates a looping stream buffer and positions the window
// at its start.
func NewModel(est *nld.Estimator, signal string, window int, rate float64, seed int64, frameRate int) (Model, error) {
	gen, err := series.Get(signal)
	if err != nil {
		return Model{}, err
	}
	if frameRate < 1 {
		frameRate = 10
	}

	bufLen := int(rate) * bufferSeconds
	if bufLen < 2*window {
		bufLen = 2 * window
	}
	buffer := gen(bufLen, rate, rand.New(rand.NewSource(seed)))

	step := int(rate) / frameRate
	if step < 1 {
		step = 1
	}

	return Model{
		est:        est,
		signal:     signal,
		buffer:     buffer,
		window:     window,
		step:       step,
		running:    true,
		lambdaHist: make([]float64, 0, historyCapacity),
		alphaHist:  make([]float64, 0, historyCapacity),
		frameRate:  frameRate,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}

	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	m.pos = (m.pos + m.step) % (m.buffer.Len() - m.window)
	window := m.buffer.Window(m.pos, m.window)

	m.features = m.est.Estimate(window)

	m.lambdaHist = append(m.lambdaHist, m.features.Lyapunov)
	m.alphaHist = append(m.alphaHist, m.features.Alpha)
	if len(m.lambdaHist) > historyCapacity {
		m.lambdaHist = m.lambdaHist[1:]
		m.alphaHist = m.alphaHist[1:]
	}
}

func (m Model) View() string {
	var sb strings.Builder

	status := ""
	if !m.running {
		status = pausedStyle.Render("  [paused]")
	}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("nld live: %s @ %.0f Hz%s", m.signal, m.buffer.Rate, status)))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("lyapunov"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%+.4f 1/s", m.features.Lyapunov)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("dfa alpha"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%.4f", m.features.Alpha)))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("window"))
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%d samples @ %d", m.window, m.pos)))
	sb.WriteString("\n")

	if len(m.lambdaHist) >= 2 {
		sb.WriteString(graphStyle.Render(asciigraph.Plot(m.lambdaHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("lyapunov exponent"),
		)))
		sb.WriteString("\n")
		sb.WriteString(graphStyle.Render(asciigraph.Plot(m.alphaHist,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("dfa alpha"),
		)))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("space pause · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run starts the live view and blocks until the user quits.
func Run(est *nld.Estimator, signal string, window int, rate float64, seed int64, frameRate int) error {
	model, err := NewModel(est, signal, window, rate, seed, frameRate)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
