package assets

import _ "embed"

//go:embed blink.html
var BlinkHTML []byte

//go:embed error.html
var ErrorHTML []byte
