/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in  string
		neg bool
		mag uint64
	}{
		{"", false, 0},
		{"0", false, 0},
		{"42", false, 42},
		{"-42", true, 42},
		{"+7", false, 7},
		{"  \t12", false, 12},
		{"12abc", false, 12},
		{"abc12", false, 0},
		{"-", true, 0},
		{"007", false, 7},
		{"1 2", false, 1},
		{"18446744073709551615", false, math.MaxUint64},
		{"99999999999999999999999", false, math.MaxUint64},
		{"-99999999999999999999999", true, math.MaxUint64},
	}
	for _, tt := range tests {
		neg, mag := parseLeadingInt(tt.in)
		assert.Equal(t, tt.neg, neg, tt.in)
		assert.Equal(t, tt.mag, mag, tt.in)
	}
}

func TestAtoi(t *testing.T) {
	assert.Equal(t, 42, atoi[int]("42"))
	assert.Equal(t, -42, atoi[int]("-42"))
	assert.Equal(t, int8(-128), atoi[int8]("-128"))
	assert.Equal(t, int64(math.MinInt64), atoi[int64]("-9223372036854775808"))
	assert.Equal(t, uint64(math.MaxUint64), atoi[uint64]("18446744073709551615"))
	assert.Equal(t, uint16(65535), atoi[uint16]("65535"))
	assert.Equal(t, 0, atoi[int]("x1"))
}

func TestItoa(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "-1", itoa(int8(-1)))
	assert.Equal(t, "255", itoa(uint8(255)))
	assert.Equal(t, "18446744073709551615", itoa(uint64(math.MaxUint64)))
	assert.Equal(t, "-9223372036854775808", itoa(int64(math.MinInt64)))
}
