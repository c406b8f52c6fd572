package element

import (
	"errors"
	"fmt"
)

// DuplicateOffset is the fixed position shift applied to duplicated elements.
const DuplicateOffset = 20

// EmojiFontSize is the default size for emoji elements.
const EmojiFontSize = 120

// ErrNotFound is returned when an id does not refer to a live element.
var ErrNotFound = errors.New("element not found")

// ErrMinGradientColors rejects edits that would leave an enabled gradient
// with fewer than two colors.
var ErrMinGradientColors = errors.New("gradient requires at least 2 colors")

// Document is the authoritative ordered element list plus selection. Slice
// order is paint order: later elements draw on top and appear higher in the
// layers panel.
//
// A Document is not safe for concurrent use; the engine runs single-threaded
// on the host event loop.
type Document struct {
	elements []Element
	selected string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Load replaces the element list wholesale, e.g. when a project record is
// opened. Duplicate ids are rejected and selection is cleared.
func (d *Document) Load(elements []Element) error {
	seen := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		if err := el.Validate(); err != nil {
			return err
		}
		if _, dup := seen[el.ID]; dup {
			return fmt.Errorf("duplicate element id %s", el.ID)
		}
		seen[el.ID] = struct{}{}
	}
	d.elements = make([]Element, len(elements))
	for i, el := range elements {
		d.elements[i] = el.Clone()
	}
	d.selected = ""
	return nil
}

// Elements returns a copy of the element list in paint order.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	for i, el := range d.elements {
		out[i] = el.Clone()
	}
	return out
}

// Len returns the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (Element, bool) {
	if i := d.index(id); i >= 0 {
		return d.elements[i].Clone(), true
	}
	return Element{}, false
}

// Select marks the element with the given id as selected.
func (d *Document) Select(id string) error {
	if d.index(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	d.selected = id
	return nil
}

// ClearSelection drops the current selection.
func (d *Document) ClearSelection() {
	d.selected = ""
}

// SelectedID returns the selected element's id, or "" when nothing is
// selected.
func (d *Document) SelectedID() string {
	return d.selected
}

// Selection returns the selected element, if any.
func (d *Document) Selection() (Element, bool) {
	if d.selected == "" {
		return Element{}, false
	}
	return d.ByID(d.selected)
}

// AddText appends a text element built from the given defaults, assigns it a
// fresh id, forces visibility and selects it.
func (d *Document) AddText(defaults Element) Element {
	el := defaults.Clone()
	el.ID = NewID()
	el.Type = TypeText
	el.Visible = true
	d.elements = append(d.elements, el)
	d.selected = el.ID
	return el.Clone()
}

// AddImage appends an image element with a top-left positioned box.
func (d *Document) AddImage(src string, x, y, width, height float64) Element {
	el := Element{
		ID:      NewID(),
		Type:    TypeImage,
		Visible: true,
		Src:     src,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
	}
	d.elements = append(d.elements, el)
	d.selected = el.ID
	return el
}

// AddIcon appends an icon element carrying raw vector markup with a
// recolorable placeholder. Icons default to white.
func (d *Document) AddIcon(svgContent, name string, x, y, size float64) Element {
	el := Element{
		ID:         NewID(),
		Type:       TypeIcon,
		Visible:    true,
		Name:       name,
		SVGContent: svgContent,
		Color:      "#FFFFFF",
		X:          x,
		Y:          y,
		Width:      size,
		Height:     size,
	}
	d.elements = append(d.elements, el)
	d.selected = el.ID
	return el
}

// AddEmoji appends an emoji as a text element with emoji-appropriate defaults
// and every effect disabled.
func (d *Document) AddEmoji(char string, x, y float64) Element {
	el := Element{
		ID:         NewID(),
		Type:       TypeText,
		Visible:    true,
		Content:    char,
		X:          x,
		Y:          y,
		FontSize:   EmojiFontSize,
		FontFamily: "sans-serif",
		FontWeight: "normal",
		Color:      "#000000",
		TextAlign:  "center",
		LineHeight: 1,
		Stroke:     &Stroke{},
		TextShadow: &Shadow{},
		Glow:       &Glow{},
		Background: &Plate{},
	}
	d.elements = append(d.elements, el)
	d.selected = el.ID
	return el.Clone()
}

// Update merges the patch into the element with the given id. The merge is
// rejected as a whole if it would violate an element invariant, leaving the
// list unchanged.
func (d *Document) Update(id string, patch Patch) (Element, error) {
	i := d.index(id)
	if i < 0 {
		return Element{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	merged := patch.apply(d.elements[i])
	if err := merged.Validate(); err != nil {
		return Element{}, err
	}
	d.elements[i] = merged
	return merged.Clone(), nil
}

// Delete removes the element with the given id. Selection of a deleted
// element is not an error; it simply becomes empty.
func (d *Document) Delete(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.elements = append(d.elements[:i], d.elements[i+1:]...)
	if d.selected == id {
		d.selected = ""
	}
	return true
}

// Duplicate clones the element with a new id, offsets its position by
// DuplicateOffset, forces visibility and selects the clone.
func (d *Document) Duplicate(id string) (Element, error) {
	i := d.index(id)
	if i < 0 {
		return Element{}, fmt.Errorf("duplicate %s: %w", id, ErrNotFound)
	}
	clone := d.elements[i].Clone()
	clone.ID = NewID()
	clone.X += DuplicateOffset
	clone.Y += DuplicateOffset
	clone.Visible = true
	d.elements = append(d.elements, clone)
	d.selected = clone.ID
	return clone.Clone(), nil
}

// Reorder moves the element at from to position to. Both the canvas paint
// order and the layers view share this order, so one call reorders both.
func (d *Document) Reorder(from, to int) error {
	if from < 0 || from >= len(d.elements) || to < 0 || to >= len(d.elements) {
		return fmt.Errorf("reorder %d -> %d out of range (%d elements)", from, to, len(d.elements))
	}
	if from == to {
		return nil
	}
	el := d.elements[from]
	d.elements = append(d.elements[:from], d.elements[from+1:]...)
	rest := append([]Element{}, d.elements[to:]...)
	d.elements = append(append(d.elements[:to:to], el), rest...)
	return nil
}

// AddGradientColor appends a color stop to the element's gradient.
func (d *Document) AddGradientColor(id, color string) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("gradient %s: %w", id, ErrNotFound)
	}
	el := d.elements[i].Clone()
	if el.Gradient == nil {
		el.Gradient = &Gradient{Direction: GradientVertical}
	}
	el.Gradient.Colors = append(el.Gradient.Colors, color)
	d.elements[i] = el
	return nil
}

// SetGradientColor replaces the color at the given stop index.
func (d *Document) SetGradientColor(id string, index int, color string) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("gradient %s: %w", id, ErrNotFound)
	}
	el := d.elements[i]
	if el.Gradient == nil || index < 0 || index >= len(el.Gradient.Colors) {
		return fmt.Errorf("gradient %s: stop %d out of range", id, index)
	}
	el = el.Clone()
	el.Gradient.Colors[index] = color
	d.elements[i] = el
	return nil
}

// RemoveGradientColor removes the color at the given stop index. Removing a
// color when only two remain is rejected and no state changes.
func (d *Document) RemoveGradientColor(id string, index int) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("gradient %s: %w", id, ErrNotFound)
	}
	el := d.elements[i]
	if el.Gradient == nil || index < 0 || index >= len(el.Gradient.Colors) {
		return fmt.Errorf("gradient %s: stop %d out of range", id, index)
	}
	if len(el.Gradient.Colors) <= 2 {
		return ErrMinGradientColors
	}
	el = el.Clone()
	el.Gradient.Colors = append(el.Gradient.Colors[:index], el.Gradient.Colors[index+1:]...)
	d.elements[i] = el
	return nil
}

func (d *Document) index(id string) int {
	for i, el := range d.elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
