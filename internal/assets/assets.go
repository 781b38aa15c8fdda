package assets

import "golang.org/x/image/font/gofont/goregular"

// FontTTF is the TrueType font used for the prompt label and the display
// status text.
var FontTTF = goregular.TTF
