package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/thumbstick"
	"github.com/phanxgames/thumbstick/internal/config"
)

// Terminal cells are mapped to surface pixels at a fixed scale. Cells are
// about twice as tall as they are wide.
const (
	cellW   = 4.0
	cellH   = 8.0
	gridTop = 2 // header lines above the grid
)

var (
	baseDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	rimDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	knobDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	helpText = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func newTUICmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "drive a stick with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.stick(name)
			if err != nil {
				return err
			}
			m, err := newTUIModel(spec)
			if err != nil {
				return err
			}
			defer m.close()
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&name, "stick", "", "stick name (default: first in layout)")
	return cmd
}

// tuiModel feeds terminal mouse events into a Bus carrying a single stick
// and draws the stick as a dot grid.
type tuiModel struct {
	spec   config.StickSpec
	bus    *thumbstick.Bus
	stick  *thumbstick.Stick
	delta  *thumbstick.DeltaStick
	now    func() time.Time
	radius float64

	cols, rows int
	center     thumbstick.Vec2
	knob       thumbstick.Vec2 // offset from center, px
	reading    thumbstick.Reading
	out        thumbstick.Delta
}

func newTUIModel(spec config.StickSpec) (*tuiModel, error) {
	m := &tuiModel{spec: spec, bus: thumbstick.NewBus(), now: time.Now}
	bounds := thumbstick.Rect{Width: spec.Width, Height: spec.Height}
	surface := m.bus.NewSurface(bounds)
	m.center = surface.Center()
	m.cols = int(math.Ceil(bounds.Width / cellW))
	m.rows = int(math.Ceil(bounds.Height / cellH))

	switch spec.Kind {
	case config.KindNormalized:
		sc := spec.StickConfig()
		m.radius = sc.Radius
		sc.OnMove = func(r thumbstick.Reading) {
			m.reading = r
			m.knob = thumbstick.Vec2{X: r.X * m.radius, Y: r.Y * m.radius}
		}
		m.stick = thumbstick.NewStick(m.bus, surface, sc)
		m.stick.SetNowFunc(func() time.Time { return m.now() })
	case config.KindDelta:
		dc := spec.DeltaConfig()
		m.radius = dc.BaseRadius
		dc.OnMove = func(d thumbstick.Delta) { m.out = d }
		dc.OnEnd = func() { m.out = thumbstick.Delta{} }
		redraw := thumbstick.RendererFunc(func(center, knob thumbstick.Vec2) {
			m.knob = knob.Sub(center)
		})
		d, err := thumbstick.NewDeltaStick(surface, redraw, dc)
		if err != nil {
			return nil, err
		}
		m.delta = d
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownKind, spec.Kind)
	}
	return m, nil
}

func (m *tuiModel) close() {
	if m.stick != nil {
		m.stick.Destroy()
	}
	if m.delta != nil {
		m.delta.Destroy()
	}
}

func (m *tuiModel) Init() tea.Cmd { return nil }

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

// cellToSurface returns the surface position of the center of a terminal
// cell.
func cellToSurface(col, row int) thumbstick.Vec2 {
	return thumbstick.Vec2{
		X: (float64(col) + 0.5) * cellW,
		Y: (float64(row-gridTop) + 0.5) * cellH,
	}
}

func (m *tuiModel) handleMouse(msg tea.MouseMsg) {
	var typ thumbstick.EventType
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		typ = thumbstick.EventDown
	case tea.MouseActionRelease:
		typ = thumbstick.EventUp
	case tea.MouseActionMotion:
		typ = thumbstick.EventMove
	default:
		return
	}
	p := cellToSurface(msg.X, msg.Y)
	m.bus.Publish(thumbstick.MouseEvent(typ, p.X, p.Y, m.now()))
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", m.spec.Name, m.spec.Kind)))
	b.WriteString("\n")
	b.WriteString(helpText.Render("drag the knob with the left button, q to quit"))
	b.WriteString("\n")

	knob := m.center.Add(m.knob)
	kcol := int(math.Floor(knob.X / cellW))
	krow := int(math.Floor(knob.Y / cellH))
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			p := cellToSurface(col, row+gridTop)
			d := thumbstick.Dist(p, m.center)
			switch {
			case col == kcol && row == krow:
				b.WriteString(knobDot.Render("●"))
			case d <= m.radius && d > m.radius-cellW:
				b.WriteString(rimDot.Render("o"))
			case d <= m.radius:
				b.WriteString(baseDot.Render("·"))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(m.status())
	return b.String()
}

func (m *tuiModel) status() string {
	if m.delta != nil {
		return labelStyle.Render("delta") + valueStyle.Render(fmt.Sprintf("x=%.3f y=%.3f", m.out.X, m.out.Y))
	}
	r := m.reading
	return labelStyle.Render("read") + valueStyle.Render(fmt.Sprintf("x=%.2f y=%.2f angle=%.2f dist=%.2f", r.X, r.Y, r.Angle, r.Distance))
}
