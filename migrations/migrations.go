// Package migrations embeds the ordered SQL files applied by `slotbook migrate`.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
