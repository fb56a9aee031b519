//go:build !linux

package duplicatefinder

import "os"

func adviseSequential(file *os.File) {}
