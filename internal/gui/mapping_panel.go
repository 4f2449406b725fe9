// Mapping panels: one card of threshold sliders per active color mapping.
package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"video-color-remap/internal/core"
)

// MappingColumn manages the add button and the stack of mapping panels.
// Panel order mirrors the MappingSet; removal re-indexes the survivors.
type MappingColumn struct {
	set    *core.MappingSet
	window fyne.Window
	logger *logrus.Logger

	box    *fyne.Container
	panels []*MappingPanel
	addBtn *widget.Button
}

// NewMappingColumn creates the column with no panels.
func NewMappingColumn(set *core.MappingSet, window fyne.Window, logger *logrus.Logger) *MappingColumn {
	mc := &MappingColumn{
		set:    set,
		window: window,
		logger: logger,
	}

	mc.addBtn = widget.NewButton("Add Color Mapping", mc.addMapping)
	mc.box = container.NewVBox(mc.addBtn)

	return mc
}

// GetContainer returns the column for layout embedding.
func (mc *MappingColumn) GetContainer() fyne.CanvasObject {
	return mc.box
}

func (mc *MappingColumn) addMapping() {
	index, err := mc.set.Add(core.DefaultMapping())
	if err != nil {
		dialog.ShowInformation("Limit Reached",
			fmt.Sprintf("You can only add up to %d color mappings.", core.MaxMappings),
			mc.window)
		return
	}

	panel := newMappingPanel(mc, index, core.DefaultMapping())
	mc.panels = append(mc.panels, panel)
	mc.box.Add(panel.GetContainer())

	mc.logger.WithField("index", index).Debug("Color mapping added")
}

func (mc *MappingColumn) removeMapping(panel *MappingPanel) {
	if err := mc.set.Remove(panel.index); err != nil {
		mc.logger.WithError(err).Warn("Failed to remove mapping")
		return
	}

	mc.box.Remove(panel.GetContainer())
	mc.panels = append(mc.panels[:panel.index], mc.panels[panel.index+1:]...)

	// Re-title the survivors so numbering stays dense.
	for i := panel.index; i < len(mc.panels); i++ {
		mc.panels[i].setIndex(i)
	}

	mc.logger.WithField("index", panel.index).Debug("Color mapping removed")
}

// MappingPanel edits one mapping: six threshold sliders, a replacement color
// picker, and a remove button.
type MappingPanel struct {
	column  *MappingColumn
	index   int
	mapping core.Mapping

	card   *widget.Card
	swatch *canvas.Rectangle
}

func newMappingPanel(column *MappingColumn, index int, mapping core.Mapping) *MappingPanel {
	p := &MappingPanel{
		column:  column,
		index:   index,
		mapping: mapping,
	}

	p.swatch = canvas.NewRectangle(bgrToColor(mapping.Replacement))
	p.swatch.SetMinSize(fyne.NewSize(24, 24))

	channels := []string{"B", "G", "R"}
	rows := make([]fyne.CanvasObject, 0, 13)
	for c, name := range channels {
		c := c
		rows = append(rows,
			widget.NewLabel(fmt.Sprintf("Lower %s:", name)),
			newChannelSlider(mapping.Lower[c], func(v uint8) {
				p.mapping.Lower[c] = v
				p.changed()
			}),
		)
	}
	for c, name := range channels {
		c := c
		rows = append(rows,
			widget.NewLabel(fmt.Sprintf("Upper %s:", name)),
			newChannelSlider(mapping.Upper[c], func(v uint8) {
				p.mapping.Upper[c] = v
				p.changed()
			}),
		)
	}

	pickBtn := widget.NewButton("Pick Replacement Color", p.pickColor)
	removeBtn := widget.NewButton("Remove", func() {
		p.column.removeMapping(p)
	})
	rows = append(rows, container.NewHBox(p.swatch, pickBtn, removeBtn))

	p.card = widget.NewCard(p.title(), "", container.NewVBox(rows...))
	return p
}

// GetContainer returns the panel for layout embedding.
func (p *MappingPanel) GetContainer() fyne.CanvasObject {
	return p.card
}

func (p *MappingPanel) title() string {
	return fmt.Sprintf("Color Mapping #%d", p.index+1)
}

func (p *MappingPanel) setIndex(index int) {
	p.index = index
	p.card.SetTitle(p.title())
}

func (p *MappingPanel) changed() {
	if err := p.column.set.Update(p.index, p.mapping); err != nil {
		p.column.logger.WithError(err).Warn("Failed to update mapping")
	}
}

func (p *MappingPanel) pickColor() {
	picker := dialog.NewColorPicker("Pick Replacement Color", "", func(c color.Color) {
		r, g, b, _ := c.RGBA()
		p.mapping.Replacement = core.BGR{uint8(b >> 8), uint8(g >> 8), uint8(r >> 8)}
		p.swatch.FillColor = bgrToColor(p.mapping.Replacement)
		p.swatch.Refresh()
		p.changed()
	}, p.column.window)
	picker.Advanced = true
	picker.Show()
}

func newChannelSlider(initial uint8, onChanged func(uint8)) *widget.Slider {
	s := widget.NewSlider(0, 255)
	s.Step = 1
	s.SetValue(float64(initial))
	s.OnChanged = func(v float64) {
		onChanged(uint8(v))
	}
	return s
}

func bgrToColor(c core.BGR) color.Color {
	return color.NRGBA{R: c[2], G: c[1], B: c[0], A: 255}
}
