package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"

	"github.com/serialscope/serialscope/config"
	"github.com/serialscope/serialscope/engine"
	"github.com/serialscope/serialscope/model"
	"github.com/serialscope/serialscope/source"
	"github.com/serialscope/serialscope/util"
)

// Page selects the main view.
type Page int

const (
	PageScope Page = iota
	PageChannels
	pageCount
)

var pageNames = []string{"Scope", "Channels"}

type frameMsg time.Time

// sourceDoneMsg is sent when the line source stops for good.
type sourceDoneMsg struct{ err error }

// exportDoneMsg is sent after a CSV/PNG export completes.
type exportDoneMsg struct {
	path string
	err  error
}

// sourceState carries producer-side state across goroutines: the source
// callback runs outside the bubbletea loop.
type sourceState struct {
	rows    atomic.Uint64
	dropped atomic.Uint64
	status  atomic.Value // string
}

// Model is the bubbletea model.
type Model struct {
	eng *engine.Engine
	cfg config.Config
	src source.Source

	ctx    context.Context
	cancel context.CancelFunc
	stats  *sourceState

	width  int
	height int

	page     Page
	selected int
	showHelp bool
	help     help.Model
	plot     *plot.Canvas

	// Renderer-side display settings (the engine works purely in
	// sample-index space).
	autoscale    bool
	yLo, yHi     float64
	haveManual   bool
	timeAbsolute bool

	// Mouse drag state
	dragging  bool
	lastDragX int

	// Transient status feedback
	statusMsg  string
	statusTime time.Time
}

// NewModel creates the TUI model around an engine and a line source.
func NewModel(eng *engine.Engine, src source.Source, cfg config.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	const (
		defaultWidth  = 80
		defaultHeight = 24
	)
	p := plot.NewCanvas(defaultWidth-4, defaultHeight-7)
	p.ShowAxis = false

	stats := &sourceState{}
	stats.status.Store("streaming")
	if ss, ok := src.(*source.SerialSource); ok {
		stats.status.Store("connecting")
		ss.Status = func(s string) { stats.status.Store(s) }
	}

	return Model{
		eng:          eng,
		cfg:          cfg,
		src:          src,
		ctx:          ctx,
		cancel:       cancel,
		stats:        stats,
		help:         help.New(),
		plot:         &p,
		autoscale:    cfg.Autoscale,
		timeAbsolute: cfg.TimeMode == "absolute",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(m.cfg.FPS), m.listenSource())
}

func frameTick(fps int) tea.Cmd {
	if fps < 1 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// listenSource runs the line source in the background, feeding the
// engine directly. The engine's lock makes the producer/consumer split
// safe; the UI just re-renders whatever is there on the next frame.
func (m Model) listenSource() tea.Cmd {
	eng, stats := m.eng, m.stats
	return func() tea.Msg {
		err := m.src.Run(m.ctx, func(ev model.Event) {
			if ev.IsHeader() {
				eng.SetSeries(ev.Names)
				return
			}
			if eng.Append(ev.Values, time.Now()) {
				stats.rows.Add(1)
			} else {
				stats.dropped.Add(1)
			}
		})
		return sourceDoneMsg{err: err}
	}
}

func exportCSV(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("serialscope-%s.csv", time.Now().Format("20060102-150405"))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := eng.ExportCSV(f); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func exportPNG(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("serialscope-%s.png", time.Now().Format("20060102-150405"))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := eng.ExportPNG(f, 1280, 720); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		// Momentum advances before the frame's snapshot is taken in
		// View, so a scroll and its render always agree.
		m.eng.Tick(time.Time(msg))
		return m, frameTick(m.cfg.FPS)

	case sourceDoneMsg:
		if msg.err != nil {
			m.stats.status.Store("source error: " + msg.err.Error())
		} else {
			m.stats.status.Store("source closed")
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed: " + msg.err.Error()
		} else {
			m.statusMsg = "wrote " + msg.path
		}
		m.statusTime = time.Now()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePlot()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panStep := max(1, m.eng.Window()/8)

	switch {
	case key.Matches(msg, keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, keys.Freeze):
		m.eng.SetFrozen(!m.eng.Frozen())

	case key.Matches(msg, keys.Live):
		m.eng.SetFrozen(false)

	case key.Matches(msg, keys.PanLeft):
		m.eng.StopMomentum()
		m.eng.SetCursor(m.eng.Cursor() + panStep)

	case key.Matches(msg, keys.PanRight):
		m.eng.StopMomentum()
		m.eng.SetCursor(m.eng.Cursor() - panStep)

	case key.Matches(msg, keys.PageLeft):
		m.eng.StopMomentum()
		m.eng.SetCursor(m.eng.Cursor() + m.eng.Window())

	case key.Matches(msg, keys.PageRight):
		m.eng.StopMomentum()
		m.eng.SetCursor(m.eng.Cursor() - m.eng.Window())

	case key.Matches(msg, keys.ZoomIn):
		m.eng.ZoomBy(1.25)

	case key.Matches(msg, keys.ZoomOut):
		m.eng.ZoomBy(0.8)

	case key.Matches(msg, keys.Autoscale):
		m.autoscale = !m.autoscale
		if !m.autoscale && !m.haveManual {
			// Seed manual bounds from whatever is on screen.
			if lo, hi, ok := dataBounds(m.eng.Snapshot().Series); ok {
				m.yLo, m.yHi = niceRange(lo, hi)
				m.haveManual = true
			}
		}

	case key.Matches(msg, keys.RangeIn):
		if !m.autoscale && m.haveManual {
			mid, span := (m.yLo+m.yHi)/2, (m.yHi-m.yLo)*0.8/2
			m.yLo, m.yHi = mid-span, mid+span
		}

	case key.Matches(msg, keys.RangeOut):
		if !m.autoscale && m.haveManual {
			mid, span := (m.yLo+m.yHi)/2, (m.yHi-m.yLo)*1.25/2
			m.yLo, m.yHi = mid-span, mid+span
		}

	case key.Matches(msg, keys.TimeMode):
		m.timeAbsolute = !m.timeAbsolute

	case key.Matches(msg, keys.CapUp):
		m.eng.SetCapacity(m.eng.Capacity() * 2)
		m.statusMsg = fmt.Sprintf("capacity %d", m.eng.Capacity())
		m.statusTime = time.Now()

	case key.Matches(msg, keys.CapDown):
		m.eng.SetCapacity(m.eng.Capacity() / 2)
		m.statusMsg = fmt.Sprintf("capacity %d", m.eng.Capacity())
		m.statusTime = time.Now()

	case key.Matches(msg, keys.Clear):
		m.eng.Clear()

	case key.Matches(msg, keys.CSV):
		return m, exportCSV(m.eng)

	case key.Matches(msg, keys.PNG):
		return m, exportPNG(m.eng)

	case key.Matches(msg, keys.Page):
		m.page = (m.page + 1) % pageCount

	case key.Matches(msg, keys.Up):
		if n := len(m.eng.Names()); n > 0 {
			m.selected = (m.selected - 1 + n) % n
		}

	case key.Matches(msg, keys.Down):
		if n := len(m.eng.Names()); n > 0 {
			m.selected = (m.selected + 1) % n
		}
	}
	return m, nil
}

// handleMouse maps dragging on the chart to the pan gesture and the
// wheel to zoom. Horizontal cells convert to samples through the current
// window width, so a drag tracks the data under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.eng.ZoomBy(1.25)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.eng.ZoomBy(0.8)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.eng.PanStart()
			m.dragging = true
			m.lastDragX = msg.X
		}
	case tea.MouseActionMotion:
		if m.dragging {
			dx := msg.X - m.lastDragX
			m.lastDragX = msg.X
			if dx != 0 {
				// Dragging right reveals older data.
				perCell := float64(m.eng.Window()) / float64(max(1, m.plotWidth()))
				m.eng.PanDelta(float64(dx)*perCell, time.Now())
			}
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.eng.PanEnd(time.Now())
		}
	}
	return m, nil
}

func (m *Model) resizePlot() {
	w, h := m.plotWidth(), m.plotHeight()
	p := plot.NewCanvas(w, h)
	p.ShowAxis = m.plot.ShowAxis
	p.NumDataPoints = m.plot.NumDataPoints
	p.LineColors = m.plot.LineColors
	m.plot = &p
}

func (m Model) plotWidth() int {
	return max(10, m.width-4)
}

func (m Model) plotHeight() int {
	// Legend, panel border, time labels, status bar, help line.
	return max(4, m.height-7)
}

func (m Model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	snap := m.eng.Snapshot()

	var body string
	switch m.page {
	case PageChannels:
		lo, hi := m.yBounds(snap)
		body = renderChannelsPage(snap, m.selected, m.width, m.height-3, lo, hi)
	default:
		body = m.renderScopePage(snap)
	}

	if m.showHelp {
		body = lipgloss.JoinVertical(lipgloss.Left, body, panelStyle.Render(m.help.View(keys)))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar(snap), helpStyle.Render(m.help.View(keys)))
	}
	return body
}

// yBounds resolves the display range for the current frame: autoscale
// follows the data, manual bounds stay where the user put them.
func (m Model) yBounds(snap model.Snapshot) (float64, float64) {
	if !m.autoscale && m.haveManual {
		return m.yLo, m.yHi
	}
	lo, hi, ok := dataBounds(snap.Series)
	if !ok {
		return -1, 1
	}
	return niceRange(lo, hi)
}

func (m Model) renderScopePage(snap model.Snapshot) string {
	// Legend
	var legend []string
	for ch, name := range snap.Names {
		last := "-"
		if len(snap.Series[ch]) > 0 {
			last = util.FormatValue(snap.Series[ch][len(snap.Series[ch])-1])
		}
		entry := fmt.Sprintf("%s %s", name, last)
		if ch == m.selected {
			legend = append(legend, selectedStyle.Render(entry))
		} else {
			legend = append(legend, channelStyle(ch).Render(entry))
		}
	}
	legendLine := titleStyle.Render("SCOPE ") + strings.Join(legend, dimStyle.Render(" │ "))
	if len(snap.Names) == 0 {
		legendLine = titleStyle.Render("SCOPE ") + dimStyle.Render("waiting for a header or data rows...")
	}

	// Plot
	series := snap.Series
	if !m.autoscale && m.haveManual {
		series = clampSeries(series, m.yLo, m.yHi)
	}
	m.plot.NumDataPoints = max(1, snap.Size)
	m.styleLines(len(series))
	var rendered string
	if snap.Size > 0 {
		m.plot.Fill(series)
		rendered = m.plot.String()
	} else {
		rendered = strings.TrimRight(strings.Repeat(strings.Repeat(" ", m.plotWidth())+"\n", m.plotHeight()), "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		legendLine,
		panelStyle.Render(rendered),
		m.timeLabels(snap),
	)
}

// styleLines highlights the selected channel and dims the rest, in the
// palette the terminal background supports.
func (m Model) styleLines(n int) {
	var highlight, dim plot.Color
	if lipgloss.DefaultRenderer().HasDarkBackground() {
		highlight, dim = plot.Red, plot.DimGray
	} else {
		highlight, dim = plot.Black, plot.LightGray
	}

	colors := make([]plot.Color, max(n, 1))
	for i := range colors {
		colors[i] = dim
	}
	if m.selected < len(colors) {
		colors[m.selected] = highlight
	}
	m.plot.LineColors = colors
}

// timeLabels renders the window bounds under the plot, as wall-clock
// times or offsets back from the newest visible sample.
func (m Model) timeLabels(snap model.Snapshot) string {
	w := m.plotWidth()
	if snap.Size == 0 {
		return dimStyle.Render(strings.Repeat(" ", w))
	}

	var left, right string
	if m.timeAbsolute && !snap.StartTime.IsZero() {
		left = snap.StartTime.Format("15:04:05")
		right = snap.EndTime.Format("15:04:05")
	} else {
		left = "-" + util.FormatDuration(snap.EndTime.Sub(snap.StartTime))
		if snap.Frozen {
			right = fmt.Sprintf("#%d", snap.End)
		} else {
			right = "now"
		}
	}

	gap := w - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return dimStyle.Render(" " + left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatusBar(snap model.Snapshot) string {
	var parts []string

	if snap.Frozen {
		if m.eng.MomentumActive() {
			parts = append(parts, frozenStyle.Render("◉ COAST"))
		} else {
			parts = append(parts, frozenStyle.Render("❚❚ FROZEN"))
		}
		parts = append(parts, dimStyle.Render(fmt.Sprintf("cursor -%d", m.eng.Cursor())))
	} else {
		parts = append(parts, liveStyle.Render("▶ LIVE"))
	}

	parts = append(parts,
		dimStyle.Render(fmt.Sprintf("win %d", snap.Size)),
		dimStyle.Render(fmt.Sprintf("cap %d", snap.Capacity)),
		dimStyle.Render(fmt.Sprintf("n %d", snap.Total)),
	)
	if d := m.stats.dropped.Load(); d > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("drop %d", d)))
	}

	srcStatus, _ := m.stats.status.Load().(string)
	parts = append(parts, dimStyle.Render(m.src.Describe()+" ("+srcStatus+")"))

	if m.statusMsg != "" && time.Since(m.statusTime) < 5*time.Second {
		parts = append(parts, valueStyle.Render(m.statusMsg))
	}

	scale := "autoscale"
	if !m.autoscale {
		scale = fmt.Sprintf("y [%s, %s]", util.FormatValue(m.yLo), util.FormatValue(m.yHi))
	}
	parts = append(parts, dimStyle.Render(scale), dimStyle.Render(pageNames[m.page]))

	return " " + strings.Join(parts, dimStyle.Render(" • "))
}
