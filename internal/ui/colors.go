package ui

// ColorReset ends the current role.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed starts the Invalid role.
func ColorRed() string { return GetCurrentTheme().Invalid }

// ColorGreen starts the Valid role.
func ColorGreen() string { return GetCurrentTheme().Valid }

// ColorYellow starts the Warning role.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan starts the Value role.
func ColorCyan() string { return GetCurrentTheme().Value }

func ColorBold() string { return GetCurrentTheme().Bold }

// ColorEdited starts the highlight of the overridden field.
func ColorEdited() string { return GetCurrentTheme().Edited }

// Colors adapts the current theme to apperrors.ColorProvider.
type Colors struct{}

func (Colors) Yellow() string { return ColorYellow() }
func (Colors) Red() string    { return ColorRed() }
func (Colors) Reset() string  { return ColorReset() }
