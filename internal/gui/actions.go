// Button and dialog actions: load, play/pause, apply & save.
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"video-color-remap/internal/core"
	vio "video-color-remap/internal/io"
)

func (a *Application) loadVideo() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.openSession(reader.URI().Path())
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(vio.SupportedVideoExtensions))
	fileDialog.Show()
}

func (a *Application) openSession(path string) {
	if !vio.IsSupportedVideoFormat(path) {
		a.showError("Unsupported Format", fmt.Errorf("unsupported video format: %s", path))
		return
	}

	a.player.Stop()
	a.playBtn.SetText("Play")

	if a.session != nil {
		a.session.Close()
		a.session = nil
	}

	session, err := core.OpenSession(path, a.logger)
	if err != nil {
		a.showError("Could not open video", err)
		return
	}
	a.session = session

	a.updateStatus(fmt.Sprintf("Loaded %s (%dx%d, %.1f fps, %d frames)",
		path, session.Width(), session.Height(), session.FPS(), session.FrameCount()))

	// Show the first frame immediately.
	a.advanceAndPresent()
}

func (a *Application) togglePlay() {
	if a.session == nil {
		return
	}

	if a.player.Playing() {
		a.player.Stop()
		a.playBtn.SetText("Play")
		return
	}

	a.playBtn.SetText("Pause")
	a.player.Start(func() bool {
		if a.advanceAndPresent() {
			return true
		}
		fyne.Do(func() {
			a.playBtn.SetText("Play")
		})
		return false
	})
}

// advanceAndPresent reads one frame, composites it with the active mappings,
// and updates the canvas. Returns false on end of stream; the session has
// already rewound to frame 0 at that point.
func (a *Application) advanceAndPresent() bool {
	if err := a.session.NextFrame(&a.frame); err != nil {
		return false
	}

	composited := core.Composite(a.frame, a.mappings.Snapshot())
	a.canvas.UpdateFrame(composited)
	composited.Close()
	return true
}

// presentHeldFrame re-composites the most recently decoded frame without
// advancing the session, so slider edits preview instantly while paused.
func (a *Application) presentHeldFrame() {
	if a.session == nil || a.frame.Empty() {
		return
	}

	composited := core.Composite(a.frame, a.mappings.Snapshot())
	a.canvas.UpdateFrame(composited)
	composited.Close()
}

func (a *Application) applyAndSave() {
	if a.session == nil || a.session.Closed() {
		a.showError("No Video", core.ErrNoSource)
		return
	}

	// Export and playback compete for the session position.
	a.player.Stop()
	a.playBtn.SetText("Play")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			// User cancelled; not an error.
			return
		}
		destPath := writer.URI().Path()
		writer.Close()

		a.runExport(destPath)
	}, a.window)

	fileDialog.SetFileName("output.mp4")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".mp4"}))
	fileDialog.Show()
}

func (a *Application) runExport(destPath string) {
	a.updateStatus(fmt.Sprintf("Exporting to %s ...", destPath))

	if err := a.exporter.Export(a.session, a.mappings.Snapshot(), destPath); err != nil {
		a.showError("Export Failed", err)
		return
	}

	// Session is back at frame 0; refresh the preview from there.
	a.advanceAndPresent()
	a.updateStatus(fmt.Sprintf("Saved %s", destPath))
	a.showInfo("Done", "Video saved successfully!")
}
