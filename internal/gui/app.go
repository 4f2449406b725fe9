// Main application window: video preview, transport controls, mapping panels.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"video-color-remap/internal/core"
	vio "video-color-remap/internal/io"
	"video-color-remap/internal/playback"
)

const instructionsText = "Instructions:\n" +
	"1. Click 'Load Video' to select a video file.\n" +
	"2. Use 'Add Color Mapping' to add up to 10 color transformations.\n" +
	"3. Adjust the B/G/R lower and upper sliders to target an original color range.\n" +
	"4. Click 'Pick Replacement Color' to choose the new color for that range.\n" +
	"5. Press 'Play' to preview changes live.\n" +
	"6. Click 'Apply & Save' to render a new video with all changes applied."

// Application owns the window, the active session, and the mapping set.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger

	session  *core.Session
	mappings *core.MappingSet
	player   *playback.Player
	exporter *vio.Exporter

	// Most recent original (uncomposited) frame, re-composited on mapping edits.
	frame gocv.Mat

	canvas        *VideoCanvas
	mappingColumn *MappingColumn
	loadBtn       *widget.Button
	playBtn       *widget.Button
	exportBtn     *widget.Button
	status        *widget.Label
}

// NewApplication builds the main window and wires all components together.
func NewApplication(app fyne.App, logger *logrus.Logger) *Application {
	window := app.NewWindow("Video Color Remapper")
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()

	a := &Application{
		app:      app,
		window:   window,
		logger:   logger,
		mappings: core.NewMappingSet(),
		player:   playback.NewPlayer(logger, playback.DefaultInterval),
		exporter: vio.NewExporter(logger),
		frame:    gocv.NewMat(),
	}

	a.initializeGUI()
	a.setupLayout()

	// Slider or color edits while paused re-render the held frame.
	a.mappings.Subscribe(func() {
		if !a.player.Playing() {
			a.presentHeldFrame()
		}
	})

	return a
}

func (a *Application) initializeGUI() {
	a.canvas = NewVideoCanvas()
	a.mappingColumn = NewMappingColumn(a.mappings, a.window, a.logger)

	a.loadBtn = widget.NewButton("Load Video", a.loadVideo)
	a.playBtn = widget.NewButton("Play", a.togglePlay)
	a.exportBtn = widget.NewButton("Apply & Save", a.applyAndSave)
	a.status = widget.NewLabel("No video loaded")
}

func (a *Application) setupLayout() {
	instructions := widget.NewCard("", "", widget.NewLabel(instructionsText))

	transport := container.NewHBox(a.loadBtn, a.playBtn, a.exportBtn)
	center := container.NewBorder(
		instructions,
		container.NewVBox(transport, a.status),
		nil,
		nil,
		a.canvas.GetContainer(),
	)

	content := container.NewHSplit(
		center,
		container.NewScroll(a.mappingColumn.GetContainer()),
	)
	content.SetOffset(0.7)

	a.window.SetContent(content)
}

// ShowAndRun displays the window and blocks until the application exits.
func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.player.Stop()
	if a.session != nil {
		a.session.Close()
	}
	a.frame.Close()
}

func (a *Application) updateStatus(message string) {
	a.status.SetText(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatus(fmt.Sprintf("Error: %s", err.Error()))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}
