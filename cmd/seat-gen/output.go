// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/someonegg/seatmatch/exam"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func encodeSeats(seats []exam.Seat, format string, indent bool) ([]byte, error) {
	if format == formatCBOR {
		return exam.MarshalCBOR(seats)
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent {
		encoder.SetIndent("", "   ")
	}
	if err := encoder.Encode(seats); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSeats writes to file, or to stdout when file is empty.
func writeSeats(stdout io.Writer, file string, seats []exam.Seat, cfg *Config) error {
	indent := false
	if cfg.Indent != nil {
		indent = *cfg.Indent
	} else if file == "" {
		indent = isTerminal(stdout)
	}

	data, err := encodeSeats(seats, cfg.Format, indent)
	if err != nil {
		return err
	}

	if file == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(file, data, 0644)
}
