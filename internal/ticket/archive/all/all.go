package all

import (
	_ "github.com/jofrance/billeterie/internal/ticket/archive/local"
	_ "github.com/jofrance/billeterie/internal/ticket/archive/s3"
)
