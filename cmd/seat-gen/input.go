// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/someonegg/seatmatch/eligibility"
	"github.com/someonegg/seatmatch/exam"
)

// decodeFile reads JSON (comments and trailing commas allowed) or, for
// .yaml/.yml and .cbor files, YAML and CBOR into v.
func decodeFile(file string, v interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Wrapf(exam.ErrInvalidInput, "%s: %v", file, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return errors.Wrapf(exam.ErrInvalidInput, "%s: %v", file, err)
		}
	case ".cbor":
		var doc interface{}
		if err := exam.UnmarshalCBOR(data, &doc); err != nil {
			return errors.Wrapf(exam.ErrInvalidInput, "%s: %v", file, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return errors.Wrapf(exam.ErrInvalidInput, "%s: %v", file, err)
		}
	default:
		data = jsonc.ToJSON(data)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		return errors.Wrapf(exam.ErrInvalidInput, "%s: %v", file, err)
	}
	return nil
}

func loadInput(studentFile, hallFile, eligibilityFile string) ([]exam.Student, []exam.Hall, eligibility.Table, error) {
	var students []exam.Student
	if err := decodeFile(studentFile, &students); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load student file failed")
	}

	var halls []exam.Hall
	if err := decodeFile(hallFile, &halls); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load hall file failed")
	}

	if eligibilityFile == "" {
		return students, halls, nil, nil
	}

	table, err := eligibility.Load(eligibilityFile)
	if err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			err = errors.Wrapf(exam.ErrInvalidInput, "%v", err)
		}
		return nil, nil, nil, errors.Wrap(err, "load eligibility file failed")
	}
	return students, halls, table, nil
}
