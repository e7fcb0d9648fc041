package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/crate/internal/collection"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/services"
	"github.com/desertthunder/crate/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AlbumListView ViewState = iota
	AddFormView
	ConfirmResetView
)

const (
	fieldTitle = iota
	fieldArtist
	fieldYear
)

// AlbumCatalog is the part of [services.Catalog] the TUI drives.
type AlbumCatalog interface {
	Albums(ctx context.Context) []models.Album
	AddAlbum(ctx context.Context, in services.AlbumInput) (collection.Result[models.Album], error)
	ResetAlbums(ctx context.Context) collection.Result[models.Album]
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	catalog AlbumCatalog
	width   int
	height  int
	list    list.Model
	albums  []models.Album
	inputs  []textinput.Model
	focus   int
	formErr error
	status  string
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over catalog.
func NewModel(ctx context.Context, catalog AlbumCatalog) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Albums"

	return &Model{
		ctx:     ctx,
		view:    AlbumListView,
		catalog: catalog,
		list:    l,
		inputs:  newInputs(),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func newInputs() []textinput.Model {
	placeholders := []string{"Title", "Artist", "Year"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.Prompt = fmt.Sprintf("%-8s", p+":")
		in.CharLimit = 128
		inputs[i] = in
	}
	inputs[fieldYear].CharLimit = 4
	return inputs
}

// Init loads the album collection.
func (m *Model) Init() tea.Cmd {
	return m.loadAlbums()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AlbumListView:
			return m.handleListKeys(msg)
		case AddFormView:
			return m.handleFormKeys(msg)
		case ConfirmResetView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateActive(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgAlbumsLoaded:
		return m, m.setAlbums(msg.data.([]models.Album))

	case MsgAlbumAdded:
		data := msg.data.(addedData)
		if data.err != nil {
			m.formErr = data.err
			return m, nil
		}
		added := data.result.Items[len(data.result.Items)-1]
		m.status = persistStatus(fmt.Sprintf("Added %s", added), data.result.Persisted)
		m.view = AlbumListView
		m.resetForm()
		return m, m.setAlbums(data.result.Items)

	case MsgAlbumsReset:
		result := msg.data.(collection.Result[models.Album])
		m.status = persistStatus("Collection reset", result.Persisted)
		m.view = AlbumListView
		return m, m.setAlbums(result.Items)
	}
	return m, nil
}

func persistStatus(s string, persisted bool) string {
	if persisted {
		return styles.ok.Render(s)
	}
	return styles.warn.Render(s + " (not saved: storage unavailable)")
}

func (m *Model) setAlbums(albums []models.Album) tea.Cmd {
	m.albums = albums
	return m.list.SetItems(albumItems(albums))
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case AlbumListView:
		return m.renderList()
	case AddFormView:
		return m.renderForm()
	case ConfirmResetView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		m.view = AddFormView
		m.status = ""
		m.formErr = nil
		return m, m.focusField(fieldTitle)
	case key.Matches(msg, m.keys.reset):
		m.view = ConfirmResetView
		return m, nil
	}
	return m.updateActive(msg)
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = AlbumListView
		m.resetForm()
		return m, nil
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m, m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "enter":
		if m.focus < fieldYear {
			return m, m.focusField(m.focus + 1)
		}
		in, err := m.formInput()
		if err != nil {
			m.formErr = err
			return m, nil
		}
		m.formErr = nil
		return m, m.addAlbum(in)
	}
	return m.updateActive(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.resetAlbums()
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = AlbumListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case AlbumListView:
		m.list, cmd = m.list.Update(msg)
	case AddFormView:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			m.inputs[j].PromptStyle = styles.focused
			continue
		}
		m.inputs[j].Blur()
		m.inputs[j].PromptStyle = styles.blurred
	}
	return cmd
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.focus = fieldTitle
	m.formErr = nil
}

// formInput reads the form; a non-numeric year is reported as invalid input.
func (m *Model) formInput() (services.AlbumInput, error) {
	raw := strings.TrimSpace(m.inputs[fieldYear].Value())
	year, err := strconv.Atoi(raw)
	if err != nil {
		return services.AlbumInput{}, fmt.Errorf("%w: year %q is not a number", shared.ErrInvalidInput, raw)
	}
	return services.AlbumInput{
		Title:  m.inputs[fieldTitle].Value(),
		Artist: m.inputs[fieldArtist].Value(),
		Year:   year,
	}, nil
}

func (m *Model) loadAlbums() tea.Cmd {
	return func() tea.Msg {
		return albumsLoadedMsg(m.catalog.Albums(m.ctx))
	}
}

func (m *Model) addAlbum(in services.AlbumInput) tea.Cmd {
	return func() tea.Msg {
		result, err := m.catalog.AddAlbum(m.ctx, in)
		return albumAddedMsg(result, err)
	}
}

func (m *Model) resetAlbums() tea.Cmd {
	return func() tea.Msg {
		return albumsResetMsg(m.catalog.ResetAlbums(m.ctx))
	}
}

func (m *Model) renderList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.add, m.keys.reset, m.keys.quit})
	if m.status != "" {
		return fmt.Sprintf("%s\n%s\n\n%s", m.list.View(), m.status, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.list.View(), helpView)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Add Album"))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.formErr != nil {
		var dup *models.DuplicateError
		if errors.As(m.formErr, &dup) {
			b.WriteString("\n" + styles.warn.Render(m.formErr.Error()) + "\n")
		} else {
			b.WriteString("\n" + styles.err.Render(m.formErr.Error()) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.next, m.keys.submit, m.keys.back}))
	return b.String()
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Reset the album collection?")
	info := fmt.Sprintf("\n%d albums will be replaced by the %d seed albums.\n", len(m.albums), len(models.SeedAlbums()))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
