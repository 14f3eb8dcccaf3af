// assets/embed.go
//
// Embedded static assets for the fretquiz server. The widget page is
// compiled into the binary so the server runs standalone.

package assets

import _ "embed"

//go:embed index.html
var IndexHTML []byte
