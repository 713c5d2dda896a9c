package views

import "embed"

// Assets holds the stylesheet referenced by Layout, under "static".
//
//go:embed static
var Assets embed.FS
