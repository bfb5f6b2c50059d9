//go:build !unix

package storage

import "os"

// No advisory locking off unix; a single process per history file is assumed.

func lockExclusive(*os.File) error { return nil }

func lockShared(*os.File) error { return nil }

func unlock(*os.File) error { return nil }
