// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package lossless

import (
	"errors"

	"github.com/intel/fastlossless/compress/lossless/internal/huffman"
)

// Input validation errors. ErrInvalidDepthLimit and ErrTooManySymbols both
// match ErrInvalidInput with errors.Is.
var (
	ErrInvalidInput      = huffman.ErrInvalidInput
	ErrInvalidDepthLimit = huffman.ErrInvalidDepthLimit
	ErrTooManySymbols    = huffman.ErrTooManySymbols
)

// Errors returned by ExpandTokens.
var (
	ErrInvalidToken  = errors.New("lossless: invalid code length token")
	ErrTokenOverflow = errors.New("lossless: code length tokens overflow the alphabet")
)
