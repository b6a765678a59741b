// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// encMode uses Core Deterministic Encoding, so equal values always encode
// to equal bytes whatever the key order or spacing of the source JSON.
var encMode cbor.EncMode

// decMode turns maps into map[string]interface{} and bignums into *big.Int,
// so decoded documents can be written out as JSON.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("exam: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
		BigIntDec:      cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("exam: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes v the way Fingerprint does.
func MarshalCBOR(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

func UnmarshalCBOR(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}

func (s Student) MarshalCBOR() ([]byte, error) {
	if s == nil {
		return encMode.Marshal(nil)
	}
	v, err := decodeJSON(s)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(v)
}

func (h HallID) MarshalCBOR() ([]byte, error) {
	if h.numeric {
		return encMode.Marshal(plain(json.Number(h.text)))
	}
	return encMode.Marshal(h.text)
}

// Fingerprint is the blake3 digest of the canonical encoding of the inputs.
func Fingerprint(students []Student, halls []Hall) (string, error) {
	data, err := encMode.Marshal(struct {
		Students []Student `cbor:"students"`
		Halls    []Hall    `cbor:"halls"`
	}{students, halls})
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func decodeJSON(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var v interface{}
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}
	return plain(v), nil
}

// plain replaces json.Number with int64, big.Int (CBOR bignum) or float64.
// Numbers a float64 cannot hold keep their text.
func plain(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if !strings.ContainsAny(v.String(), ".eE") {
			if i, ok := new(big.Int).SetString(v.String(), 10); ok {
				return i
			}
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]interface{}:
		for k, e := range v {
			v[k] = plain(e)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = plain(e)
		}
		return v
	}
	return v
}
