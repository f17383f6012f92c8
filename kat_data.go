// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"

// The byte slices below are the known-answer vectors for Hash_DRBG at
// every (hash, strength) pair this package implements. Each vector's
// name encodes its hash and security strength in bits, followed by
// which part of the sequence it feeds: IntEin (instantiate entropy),
// IntNon (instantiate nonce), IntPer (instantiate personalization
// string), GenEin (entropy input mixed in by a reseed immediately
// before Generate), or Result (expected output of the Generate call,
// which runs without additional input). A strength slot that exercises
// fewer inputs simply omits the corresponding variable; the profiles
// table in init below builds its KATVector tuples positionally, leaving
// unused fields as nil.

var (
	sha512_112IntEin = []byte{0xd9, 0x56, 0xca, 0xa2, 0x40, 0x39, 0xe7, 0x6f, 0x58, 0x61, 0x6e, 0x09, 0x69, 0xaf, 0xa2, 0xd7, 0xb7, 0x08, 0x74, 0x01, 0xee, 0x2d, 0x87, 0x77}
	sha512_112IntNon = []byte{0x32, 0xa2, 0xef, 0x15, 0x98, 0x3e, 0x3c, 0x1f, 0x66, 0xe6, 0x03, 0x2a}
	sha512_112GenEin = []byte{0x7b, 0xa5, 0xa5, 0x22, 0x58, 0x0b, 0x41, 0xe1, 0xa4, 0xf5, 0x40, 0xf9, 0xfe, 0x3d, 0xaa, 0xf9, 0x5d, 0xf7, 0x72, 0x74, 0x0a, 0x19, 0x96, 0x51}
	sha512_112Result = []byte{0x91, 0x73, 0xff, 0x1b, 0x3b, 0xd0, 0x42, 0x11, 0xf0, 0x90, 0xc0, 0xc6, 0x58, 0xcd, 0x9c, 0xa9, 0x8a, 0xc1, 0xd7, 0x7e, 0x1e, 0x3a, 0x96, 0xd1, 0x1d, 0xe6, 0x72, 0xd1, 0xec, 0xf0, 0xe3, 0x70, 0x8c, 0x7e, 0x42, 0x42, 0xf9, 0x40, 0xdf, 0x4e, 0x5b, 0x34, 0x52, 0x96, 0x72, 0x04, 0x4a, 0x10, 0x9a, 0xb8, 0xf1, 0xdb, 0xeb, 0x6a, 0xbb, 0x39, 0x30, 0x69, 0x0a, 0x92, 0x28, 0xd0, 0xe5, 0x7c}

	sha512_128IntEin = []byte{0x7a, 0xd0, 0x8c, 0x07, 0xe2, 0x6f, 0xf3, 0xff, 0xd5, 0x00, 0x1b, 0x94, 0x82, 0xad, 0x71, 0x5d, 0xb3, 0xc5, 0xff, 0x11, 0x24, 0x42, 0xed, 0xb2, 0x25, 0x9a, 0x3a, 0xfd, 0x72, 0xc9, 0xb5, 0x10}
	sha512_128IntNon = []byte{0x04, 0xb1, 0x90, 0x55, 0x10, 0x69, 0xf0, 0x4e, 0xe6, 0x63, 0x2b, 0x76, 0xda, 0x26, 0xa3, 0xd0}
	sha512_128GenEin = []byte{0x3b, 0xe4, 0xbf, 0xaa, 0x70, 0xa9, 0x2f, 0x0a, 0xab, 0x37, 0xc2, 0xe6, 0xab, 0x89, 0xf6, 0x25, 0xc9, 0xbc, 0xe6, 0xcd, 0x54, 0x9b, 0xc9, 0x32, 0x29, 0x6c, 0xad, 0x60, 0x95, 0xfc, 0x73, 0xc5}
	sha512_128Result = []byte{0x06, 0xc0, 0xaa, 0x2f, 0x10, 0x13, 0x8f, 0x79, 0x64, 0xc4, 0x84, 0x23, 0x55, 0xad, 0xdf, 0x7e, 0xd2, 0x9a, 0x8e, 0xcc, 0x6b, 0x52, 0x0a, 0xe6, 0x1a, 0x76, 0x37, 0xcd, 0x07, 0x69, 0xe2, 0x2e, 0x3c, 0x9b, 0xa0, 0xc4, 0xe2, 0x4b, 0xd5, 0xbd, 0x66, 0x06, 0x34, 0x05, 0xe5, 0x9d, 0xb7, 0xc1, 0x87, 0x03, 0x69, 0xd1, 0xec, 0xb2, 0x7d, 0x08, 0x8c, 0x00, 0xf7, 0x6b, 0x1c, 0x8b, 0x2a, 0x1d}

	// SHA-512/192 reuses the 512/128 instantiate and generate inputs,
	// and its expected result is the same 64 bytes (original_source
	// carries the same byte tables under both strength slots).
	sha512_192IntEin = sha512_128IntEin
	sha512_192IntNon = sha512_128IntNon
	sha512_192GenEin = sha512_128GenEin
	sha512_192Result = []byte{0x06, 0xc0, 0xaa, 0x2f, 0x10, 0x13, 0x8f, 0x79, 0x64, 0xc4, 0x84, 0x23, 0x55, 0xad, 0xdf, 0x7e, 0xd2, 0x9a, 0x8e, 0xcc, 0x6b, 0x52, 0x0a, 0xe6, 0x1a, 0x76, 0x37, 0xcd, 0x07, 0x69, 0xe2, 0x2e, 0x3c, 0x9b, 0xa0, 0xc4, 0xe2, 0x4b, 0xd5, 0xbd, 0x66, 0x06, 0x34, 0x05, 0xe5, 0x9d, 0xb7, 0xc1, 0x87, 0x03, 0x69, 0xd1, 0xec, 0xb2, 0x7d, 0x08, 0x8c, 0x00, 0xf7, 0x6b, 0x1c, 0x8b, 0x2a, 0x1d}

	sha512_256IntEin = []byte{0xee, 0x41, 0x94, 0x2a, 0x7f, 0xff, 0xfe, 0xc7, 0x3c, 0xf6, 0x5a, 0x2f, 0xad, 0xb5, 0x72, 0xad, 0x88, 0xb8, 0x17, 0x8d, 0x2e, 0x9b, 0xbb, 0xe3, 0x6a, 0x7f, 0x4f, 0x99, 0x67, 0xbb, 0x59, 0xbd}
	sha512_256IntNon = []byte{0x93, 0xd0, 0xca, 0xac, 0x1f, 0x57, 0xe7, 0x9f, 0x3a, 0x95, 0xb3, 0xd0, 0x89, 0xe2, 0x8d, 0x84}
	sha512_256IntPer = []byte{0x46, 0x1a, 0x63, 0x07, 0xa1, 0x95, 0x71, 0x5a, 0x45, 0x89, 0x0a, 0x44, 0x91, 0x52, 0xca, 0x8a, 0x29, 0x88, 0x8e, 0x88, 0x7f, 0x81, 0x9f, 0xcc, 0x9e, 0x08, 0x1e, 0xf0, 0x38, 0x5d, 0xb0, 0xb6}
	sha512_256Result = []byte{0xe7, 0xff, 0xc2, 0x0b, 0x33, 0x84, 0xee, 0xbd, 0x83, 0xba, 0x03, 0x90, 0xe8, 0x38, 0x62, 0xf7, 0x7b, 0xcc, 0xb4, 0x55, 0xa6, 0x78, 0xad, 0x9c, 0xa2, 0x7c, 0xd3, 0xeb, 0xe5, 0x75, 0x27, 0x89, 0x03, 0x15, 0xaa, 0x2f, 0x4a, 0x1c, 0x52, 0xd5, 0xeb, 0xfb, 0x7f, 0xe2, 0x63, 0x4e, 0xdc, 0xe3, 0xfc, 0xd7, 0x33, 0xd2, 0x88, 0xe4, 0x76, 0x04, 0x5b, 0x9a, 0xc8, 0x4b, 0x64, 0x15, 0xf0, 0x8d}

	sha384_112IntEin = []byte{0xd9, 0x56, 0xca, 0xa2, 0x40, 0x39, 0xe7, 0x6f, 0x58, 0x61, 0x6e, 0x09, 0x69, 0xaf, 0xa2, 0xd7, 0xb7, 0x08, 0x74, 0x01, 0xee, 0x2d, 0x87, 0x77}
	sha384_112IntNon = []byte{0x32, 0xa2, 0xef, 0x15, 0x98, 0x3e, 0x3c, 0x1f, 0x66, 0xe6, 0x03, 0x2a, 0x00, 0x01, 0x02, 0x03}
	sha384_112GenEin = []byte{0x7b, 0xa5, 0xa5, 0x22, 0x58, 0x0b, 0x41, 0xe1, 0xa4, 0xf5, 0x40, 0xf9, 0xfe, 0x3d, 0xaa, 0xf9, 0x5d, 0xf7, 0x72, 0x74, 0x0a, 0x19, 0x96, 0x51}
	sha384_112Result = []byte{0xe4, 0xb6, 0xba, 0x78, 0x86, 0x77, 0x24, 0x62, 0x99, 0xe9, 0xf5, 0x0f, 0x3d, 0x4a, 0xc0, 0x82, 0xd9, 0xfe, 0x98, 0x28, 0x64, 0x0a, 0xf7, 0x65, 0x2e, 0x9b, 0x4c, 0x04, 0x45, 0xa4, 0x06, 0x55, 0x35, 0xdf, 0xff, 0xf6, 0x3b, 0x34, 0xc9, 0xaf, 0x29, 0xd1, 0x50, 0xe9, 0x76, 0x5b, 0xc1, 0xb8}

	sha384_128IntEin = []byte{0x5d, 0xae, 0xbf, 0x2d, 0x31, 0x79, 0x35, 0xa3, 0x5c, 0xba, 0xfe, 0xba, 0x69, 0xfd, 0xe5, 0x67, 0x2a, 0xb8, 0x14, 0xd7, 0xb7, 0xf1, 0x2c, 0xb9, 0xa4, 0x32, 0xa6, 0xcb, 0x84, 0xb1, 0x6b, 0xa4}
	sha384_128IntNon = []byte{0x85, 0x84, 0xde, 0x95, 0x9a, 0x4b, 0xc1, 0xfd, 0x6d, 0x56, 0x0d, 0x6d, 0x30, 0xa5, 0xbc, 0x21}
	sha384_128GenEin = []byte{0x7b, 0xc1, 0x29, 0x2c, 0x59, 0x60, 0xd8, 0x10, 0x8a, 0x03, 0xd1, 0xc3, 0x29, 0x9a, 0xa9, 0xe3, 0x67, 0x11, 0xf6, 0x0c, 0x74, 0xa7, 0xdf, 0x5a, 0xae, 0x8d, 0xe3, 0x1a, 0x0a, 0xc2, 0xe7, 0xd1}
	sha384_128Result = []byte{0xd3, 0xc8, 0xce, 0xd1, 0x3e, 0xde, 0xd3, 0xa8, 0xd9, 0x14, 0x23, 0x0b, 0xbf, 0x15, 0xc9, 0x5a, 0xb0, 0x67, 0x60, 0x0c, 0x17, 0x5a, 0x02, 0x46, 0xfc, 0x6c, 0x22, 0x13, 0xcf, 0xdc, 0x96, 0x84, 0x24, 0x83, 0xfd, 0x39, 0x5d, 0x3b, 0x18, 0x7d, 0x96, 0x2b, 0xa1, 0x39, 0x9e, 0x0c, 0xa3, 0x8c}

	sha384_192IntEin = sha384_128IntEin
	sha384_192IntNon = sha384_128IntNon
	sha384_192GenEin = sha384_128GenEin
	sha384_192Result = sha384_128Result

	sha384_256IntEin = []byte{0x0f, 0xa6, 0x50, 0x97, 0x5e, 0x53, 0x5b, 0xae, 0x2a, 0xc2, 0x2d, 0x2c, 0xb8, 0x15, 0x34, 0xfa, 0x5f, 0x6b, 0x36, 0x3d, 0x64, 0xe8, 0x4d, 0xfd, 0x13, 0x01, 0x22, 0x10, 0x21, 0x0b, 0x68, 0x4a}
	sha384_256IntNon = []byte{0x43, 0x5f, 0x0c, 0xc2, 0x4c, 0xa5, 0x9c, 0x6f, 0xa5, 0x88, 0x82, 0xb6, 0xc7, 0xf1, 0x15, 0x5d}
	sha384_256IntPer = []byte{0x57, 0x79, 0x2c, 0xab, 0xd3, 0x5e, 0x62, 0xa0, 0xea, 0xf3, 0xd8, 0x56, 0x23, 0x5c, 0x68, 0xff, 0x7f, 0xe9, 0x32, 0x62, 0x1f, 0x33, 0xe8, 0x12, 0x39, 0x79, 0x5a, 0xf0, 0x3c, 0x3b, 0x43, 0xe3}
	sha384_256Result = []byte{0x47, 0x7c, 0x4b, 0xf9, 0xd8, 0x57, 0xb5, 0x07, 0x14, 0x39, 0x3c, 0x95, 0xf9, 0x2b, 0x60, 0xab, 0x13, 0xfd, 0x66, 0x83, 0xbe, 0xe9, 0x6e, 0xe3, 0x17, 0xe3, 0xf8, 0x59, 0x59, 0x25, 0x86, 0x2c, 0xc4, 0x50, 0x67, 0x81, 0x39, 0x9b, 0x5a, 0xfd, 0x80, 0x6f, 0xc3, 0x3c, 0xec, 0x27, 0x9e, 0x43, 0xc0, 0x18, 0xab, 0xfd, 0x53, 0x24, 0xce, 0x69, 0x40, 0x5d, 0xb8, 0x63, 0xb5, 0x47, 0x01, 0xf5}

	sha256_112IntEin = []byte{0xd9, 0x56, 0xca, 0xa2, 0x40, 0x39, 0xe7, 0x6f, 0x58, 0x61, 0x6e, 0x09, 0x69, 0xaf, 0xa2, 0xd7, 0xb7, 0x08, 0x74, 0x01, 0xee, 0x2d, 0x87, 0x77}
	sha256_112IntNon = []byte{0x32, 0xa2, 0xef, 0x15, 0x98, 0x3e, 0x3c, 0x1f, 0x66, 0xe6, 0x03, 0x2a}
	sha256_112GenEin = []byte{0x7b, 0xa5, 0xa5, 0x22, 0x58, 0x0b, 0x41, 0xe1, 0xa4, 0xf5, 0x40, 0xf9, 0xfe, 0x3d, 0xaa, 0xf9, 0x5d, 0xf7, 0x72, 0x74, 0x0a, 0x19, 0x96, 0x51}
	sha256_112Result = []byte{0x87, 0x72, 0xe9, 0xef, 0x03, 0x4c, 0xa5, 0x19, 0xe9, 0x23, 0x79, 0x80, 0x14, 0x08, 0xb1, 0xb8, 0xd2, 0x22, 0xea, 0x9f, 0x27, 0x87, 0x1c, 0x9d, 0x98, 0x97, 0xc0, 0xe3, 0x55, 0xdf, 0x92, 0x00}

	sha256_128IntEin = []byte{0x50, 0x21, 0xb7, 0x21, 0xef, 0x6a, 0xa7, 0xab, 0xaa, 0xba, 0x55, 0x43, 0xd5, 0x31, 0xde, 0x46, 0xa1, 0xa1, 0x20, 0x23, 0x38, 0xe4, 0xf8, 0x4b, 0x1a, 0x5e, 0xbf, 0x5c, 0xb9, 0xcf, 0x06, 0x8b}
	sha256_128IntNon = []byte{0xfc, 0x6e, 0xea, 0xe2, 0x1b, 0x3f, 0x8d, 0x8f, 0xe3, 0x82, 0x26, 0xfe, 0x65, 0xc3, 0x57, 0x08}
	sha256_128GenEin = []byte{0x6a, 0xe6, 0x5a, 0xc1, 0xe3, 0x74, 0x03, 0x8e, 0x40, 0x35, 0x1c, 0xd3, 0x5d, 0x2f, 0xdd, 0xf7, 0xd4, 0x2a, 0xe8, 0xe9, 0x63, 0x8c, 0x57, 0x1b, 0xa0, 0x73, 0x04, 0xc0, 0xdf, 0x13, 0x19, 0x43}
	sha256_128Result = []byte{0x28, 0x32, 0x53, 0x4f, 0xee, 0xe8, 0xbf, 0x4a, 0x98, 0x29, 0xa2, 0x63, 0xc0, 0x40, 0x1f, 0x15, 0x59, 0xa9, 0x52, 0x40, 0xce, 0x28, 0xa8, 0x7e, 0x27, 0x4b, 0x15, 0x75, 0x03, 0xa8, 0x09, 0x0f}

	sha256_192IntEin = sha256_128IntEin
	sha256_192IntNon = sha256_128IntNon
	sha256_192GenEin = sha256_128GenEin
	sha256_192Result = sha256_128Result

	sha256_256IntEin = []byte{0x8e, 0x9c, 0x0d, 0x25, 0x75, 0x22, 0x04, 0xf9, 0xc5, 0x79, 0x10, 0x8b, 0x23, 0x79, 0x37, 0x14, 0x9f, 0x2c, 0xc7, 0x0b, 0x39, 0xf8, 0xee, 0xef, 0x95, 0x0c, 0x97, 0x59, 0xfc, 0x0a, 0x85, 0x41}
	sha256_256IntNon = []byte{0x76, 0x9d, 0x6d, 0x67, 0x00, 0x4e, 0x19, 0x12, 0x02, 0x16, 0x53, 0xea, 0xf2, 0x73, 0xd7, 0xd6}
	sha256_256IntPer = []byte{0x7f, 0x7e, 0xc8, 0xae, 0x9c, 0x09, 0x99, 0x7d, 0xbb, 0x9e, 0x48, 0x7f, 0xbb, 0x96, 0x46, 0xb3, 0x03, 0x75, 0xf8, 0xc8, 0x69, 0x45, 0x3f, 0x97, 0x5e, 0x2e, 0x48, 0xe1, 0x5d, 0x58, 0x97, 0x4c}
	sha256_256Result = []byte{0x16, 0xe1, 0x8c, 0x57, 0x21, 0xd8, 0xf1, 0x7e, 0x5a, 0xa0, 0x16, 0x0b, 0x7e, 0xa6, 0x25, 0xb4, 0x24, 0x19, 0xdb, 0x54, 0xfa, 0x35, 0x13, 0x66, 0xbb, 0xaa, 0x2a, 0x1b, 0x22, 0x33, 0x2e, 0x4a, 0x14, 0x07, 0x9d, 0x52, 0xfc, 0x73, 0x61, 0x48, 0xac, 0xc1, 0x22, 0xfc, 0xa4, 0xfc, 0xac, 0xa4, 0xdb, 0xda, 0x5b, 0x27, 0x33, 0xc4, 0xb3, 0xec, 0xb0, 0xf2, 0xee, 0x63, 0x11, 0x61, 0xdb, 0x30}

	sha224_112IntEin = []byte{0xd9, 0x56, 0xca, 0xa2, 0x40, 0x39, 0xe7, 0x6f, 0x58, 0x61, 0x6e, 0x09, 0x69, 0xaf, 0xa2, 0xd7, 0xb7, 0x08, 0x74, 0x01, 0xee, 0x2d, 0x87, 0x77}
	sha224_112IntNon = []byte{0x32, 0xa2, 0xef, 0x15, 0x98, 0x3e, 0x3c, 0x1f, 0x66, 0xe6, 0x03, 0x2a}
	sha224_112GenEin = []byte{0x7b, 0xa5, 0xa5, 0x22, 0x58, 0x0b, 0x41, 0xe1, 0xa4, 0xf5, 0x40, 0xf9, 0xfe, 0x3d, 0xaa, 0xf9, 0x5d, 0xf7, 0x72, 0x74, 0x0a, 0x19, 0x96, 0x51}
	sha224_112Result = []byte{0x9a, 0x3d, 0xfe, 0x95, 0xee, 0x24, 0xf8, 0x00, 0x19, 0x1e, 0x83, 0x32, 0x21, 0x24, 0xff, 0xe6, 0xaa, 0xc3, 0xce, 0xac}

	sha224_128IntEin = []byte{0x50, 0x21, 0xb7, 0x21, 0xef, 0x6a, 0xa7, 0xab, 0xaa, 0xba, 0x55, 0x43, 0xd5, 0x31, 0xde, 0x46, 0xa1, 0xa1, 0x20, 0x23, 0x38, 0xe4, 0xf8, 0x4b, 0x1a, 0x5e, 0xbf, 0x5c, 0xb9, 0xcf, 0x06, 0x8b}
	sha224_128IntNon = []byte{0xfc, 0x6e, 0xea, 0xe2, 0x1b, 0x3f, 0x8d, 0x8f, 0xe3, 0x82, 0x26, 0xfe, 0x65, 0xc3, 0x57, 0x08}
	sha224_128GenEin = []byte{0x6a, 0xe6, 0x5a, 0xc1, 0xe3, 0x74, 0x03, 0x8e, 0x40, 0x35, 0x1c, 0xd3, 0x5d, 0x2f, 0xdd, 0xf7, 0xd4, 0x2a, 0xe8, 0xe9, 0x63, 0x8c, 0x57, 0x1b, 0xa0, 0x73, 0x04, 0xc0, 0xdf, 0x13, 0x19, 0x43}
	sha224_128Result = []byte{0xfb, 0xb9, 0xc0, 0x3f, 0x9c, 0x65, 0xce, 0x74, 0xf3, 0x92, 0x07, 0x03, 0x90, 0xa6, 0xcb, 0xc3, 0x96, 0xc3, 0xff, 0xdb, 0x65, 0xf3, 0x9a, 0x34, 0xbc, 0xe3, 0x61, 0xc1, 0x52, 0x01, 0xd2, 0xa4}

	sha224_192IntEin = []byte{0xd9, 0x56, 0xca, 0xa2, 0x40, 0x39, 0xe7, 0x6f, 0x58, 0x61, 0x6e, 0x09, 0x69, 0xaf, 0xa2, 0xd7, 0xb7, 0x08, 0x74, 0x01, 0xee, 0x2d, 0x87, 0x77}
	sha224_192IntNon = []byte{0x32, 0xa2, 0xef, 0x15, 0x98, 0x3e, 0x3c, 0x1f, 0x66, 0xe6, 0x03, 0x2a}
	sha224_192GenEin = []byte{0x7b, 0xa5, 0xa5, 0x22, 0x58, 0x0b, 0x41, 0xe1, 0xa4, 0xf5, 0x40, 0xf9, 0xfe, 0x3d, 0xaa, 0xf9, 0x5d, 0xf7, 0x72, 0x74, 0x0a, 0x19, 0x96, 0x51}
	sha224_192Result = []byte{0x9a, 0x3d, 0xfe, 0x95, 0xee, 0x24, 0xf8, 0x00, 0x19, 0x1e, 0x83, 0x32, 0x21, 0x24, 0xff, 0xe6, 0xaa, 0xc3, 0xce, 0xac, 0x94, 0xc8, 0xa6, 0xb0}

	sha224_256IntEin = []byte{0x50, 0x21, 0xb7, 0x21, 0xef, 0x6a, 0xa7, 0xab, 0xaa, 0xba, 0x55, 0x43, 0xd5, 0x31, 0xde, 0x46, 0xa1, 0xa1, 0x20, 0x23, 0x38, 0xe4, 0xf8, 0x4b, 0x1a, 0x5e, 0xbf, 0x5c, 0xb9, 0xcf, 0x06, 0x8b, 0x28, 0x32, 0x53, 0x4f, 0xee, 0xe8, 0xbf, 0x4a, 0x98, 0x29, 0xa2, 0x63, 0xc0, 0x40, 0x1f, 0x15, 0x59, 0xa9, 0x52, 0x40, 0xce, 0x28, 0xa8, 0x7e, 0x27, 0x4b, 0x15, 0x75, 0x03, 0xa8, 0x09, 0x0f}
	sha224_256IntNon = []byte{0xfc, 0x6e, 0xea, 0xe2, 0x1b, 0x3f, 0x8d, 0x8f, 0xe3, 0x82, 0x26, 0xfe, 0x65, 0xc3, 0x57, 0x08}
	sha224_256GenEin = []byte{0x6a, 0xe6, 0x5a, 0xc1, 0xe3, 0x74, 0x03, 0x8e, 0x40, 0x35, 0x1c, 0xd3, 0x5d, 0x2f, 0xdd, 0xf7, 0xd4, 0x2a, 0xe8, 0xe9, 0x63, 0x8c, 0x57, 0x1b, 0xa0, 0x73, 0x04, 0xc0, 0xdf, 0x13, 0x19, 0x43, 0x28, 0x32, 0x53, 0x4f, 0xee, 0xe8, 0xbf, 0x4a, 0x98, 0x29, 0xa2, 0x63, 0xc0, 0x40, 0x1f, 0x15, 0x59, 0xa9, 0x52, 0x40, 0xce, 0x28, 0xa8, 0x7e, 0x27, 0x4b, 0x15, 0x75, 0x03, 0xa8, 0x09, 0x0f}
	sha224_256Result = []byte{0x78, 0x2a, 0xa9, 0x30, 0xf5, 0xeb, 0x6d, 0xd5, 0x45, 0x48, 0x38, 0xd7, 0xf0, 0x45, 0x4f, 0x3b, 0xe0, 0xcc, 0xb8, 0x82, 0x8c, 0xab, 0x0e, 0x9e, 0xcf, 0xe1, 0x1d, 0xc0}

	// SHA-1 is approved only at 112 and 128 bit strength; the 192 and
	// 256 bit slots carry no known-answer vector.
	sha1_112IntEin = []byte{0xdc, 0x10, 0x6a, 0xce, 0x9f, 0xf5, 0x7c, 0x68, 0x13, 0x1e, 0xa2, 0xee, 0x75, 0xc6, 0x58, 0x5a}
	sha1_112IntNon = []byte{0x6a, 0x36, 0x0c, 0x6f, 0x7b, 0xd4, 0x60, 0x1e}
	sha1_112IntPer = []byte{0x6b, 0xd1, 0x58, 0x91, 0x56, 0x95, 0x25, 0x24, 0xba, 0x1f, 0x9b, 0x14, 0x06, 0x59, 0xba, 0xf2}
	sha1_112Result = []byte{0x36, 0x54, 0xd1, 0x94, 0xa7, 0x57, 0xd6, 0x29, 0x3c, 0xcd, 0x30, 0x14, 0x39, 0xa2, 0xf6, 0x3e, 0x81, 0xcb, 0xbb, 0x03, 0x1f, 0x6b, 0x47, 0x87, 0x0f, 0xf0, 0xc4, 0x1c, 0xf1, 0x2a, 0xf6, 0x3f, 0x1c, 0x8e, 0x4d, 0x25, 0xf4, 0x4b, 0x90, 0x9f, 0x27, 0x6d, 0xd0, 0x92, 0x37, 0x3a, 0x20, 0xdb, 0x2a, 0xd6, 0x68, 0x06, 0x52, 0xce, 0x9a, 0x87, 0xba, 0x6e, 0x56, 0xea, 0xb2, 0x01, 0xcb, 0xec}

	sha1_128IntEin = []byte{0xb6, 0xda, 0x6d, 0xc2, 0xad, 0x08, 0xba, 0x10, 0xf7, 0x8e, 0x6e, 0x83, 0x01, 0x57, 0x8a, 0x52}
	sha1_128IntNon = []byte{0x47, 0xb4, 0xda, 0x6f, 0x90, 0x32, 0xaf, 0x0c}
	sha1_128GenEin = []byte{0x7b, 0xbb, 0x14, 0x85, 0x07, 0x4a, 0xf4, 0xd9, 0x5a, 0xad, 0x86, 0x66, 0x3a, 0xc8, 0x8c, 0xe6}
	sha1_128Result = []byte{0x97, 0x34, 0xed, 0x8a, 0xd4, 0x1a, 0x59, 0x6f, 0x86, 0x38, 0x95, 0x72, 0xea, 0x7a, 0x77, 0x7b, 0x08, 0xb3, 0x6e, 0x7f}
)

func init() {
	profiles = map[ID]*Profile{
		digest.SHA512: {
			HashID: digest.SHA512, SeedLen: 111, BlockLen: 64, OBL: 64,
			MaxBytesPerRequest: maxBytesPerRequest, ReseedInterval: reseedInterval,
			MaxEntropyLen: maxAuxLen, MaxNonceLen: maxAuxLen, MaxPersonalizationLen: maxAuxLen, MaxAdditionalInputLen: maxAuxLen,
			SupportedStrengths: Strengths[:], IsFIPS: true, HealthCheckInterval: defaultHealthCheckInterval,
			KATVectors: [4]KATVector{
				{Ein: sha512_112IntEin, Nonce: sha512_112IntNon, GenerateEin: sha512_112GenEin, Expected: sha512_112Result},
				{Ein: sha512_128IntEin, Nonce: sha512_128IntNon, GenerateEin: sha512_128GenEin, Expected: sha512_128Result},
				{Ein: sha512_192IntEin, Nonce: sha512_192IntNon, GenerateEin: sha512_192GenEin, Expected: sha512_192Result},
				{Ein: sha512_256IntEin, Nonce: sha512_256IntNon, Personalization: sha512_256IntPer, Expected: sha512_256Result},
			},
		},
		digest.SHA384: {
			HashID: digest.SHA384, SeedLen: 111, BlockLen: 48, OBL: 48,
			MaxBytesPerRequest: maxBytesPerRequest, ReseedInterval: reseedInterval,
			MaxEntropyLen: maxAuxLen, MaxNonceLen: maxAuxLen, MaxPersonalizationLen: maxAuxLen, MaxAdditionalInputLen: maxAuxLen,
			SupportedStrengths: Strengths[:], IsFIPS: true, HealthCheckInterval: defaultHealthCheckInterval,
			KATVectors: [4]KATVector{
				{Ein: sha384_112IntEin, Nonce: sha384_112IntNon, GenerateEin: sha384_112GenEin, Expected: sha384_112Result},
				{Ein: sha384_128IntEin, Nonce: sha384_128IntNon, GenerateEin: sha384_128GenEin, Expected: sha384_128Result},
				{Ein: sha384_192IntEin, Nonce: sha384_192IntNon, GenerateEin: sha384_192GenEin, Expected: sha384_192Result},
				{Ein: sha384_256IntEin, Nonce: sha384_256IntNon, Personalization: sha384_256IntPer, Expected: sha384_256Result},
			},
		},
		digest.SHA256: {
			HashID: digest.SHA256, SeedLen: 55, BlockLen: 32, OBL: 32,
			MaxBytesPerRequest: maxBytesPerRequest, ReseedInterval: reseedInterval,
			MaxEntropyLen: maxAuxLen, MaxNonceLen: maxAuxLen, MaxPersonalizationLen: maxAuxLen, MaxAdditionalInputLen: maxAuxLen,
			SupportedStrengths: Strengths[:], IsFIPS: true, HealthCheckInterval: defaultHealthCheckInterval,
			KATVectors: [4]KATVector{
				{Ein: sha256_112IntEin, Nonce: sha256_112IntNon, GenerateEin: sha256_112GenEin, Expected: sha256_112Result},
				{Ein: sha256_128IntEin, Nonce: sha256_128IntNon, GenerateEin: sha256_128GenEin, Expected: sha256_128Result},
				{Ein: sha256_192IntEin, Nonce: sha256_192IntNon, GenerateEin: sha256_192GenEin, Expected: sha256_192Result},
				{Ein: sha256_256IntEin, Nonce: sha256_256IntNon, Personalization: sha256_256IntPer, Expected: sha256_256Result},
			},
		},
		digest.SHA224: {
			HashID: digest.SHA224, SeedLen: 55, BlockLen: 28, OBL: 28,
			MaxBytesPerRequest: maxBytesPerRequest, ReseedInterval: reseedInterval,
			MaxEntropyLen: maxAuxLen, MaxNonceLen: maxAuxLen, MaxPersonalizationLen: maxAuxLen, MaxAdditionalInputLen: maxAuxLen,
			SupportedStrengths: Strengths[:], IsFIPS: true, HealthCheckInterval: defaultHealthCheckInterval,
			KATVectors: [4]KATVector{
				{Ein: sha224_112IntEin, Nonce: sha224_112IntNon, GenerateEin: sha224_112GenEin, Expected: sha224_112Result},
				{Ein: sha224_128IntEin, Nonce: sha224_128IntNon, GenerateEin: sha224_128GenEin, Expected: sha224_128Result},
				{Ein: sha224_192IntEin, Nonce: sha224_192IntNon, GenerateEin: sha224_192GenEin, Expected: sha224_192Result},
				{Ein: sha224_256IntEin, Nonce: sha224_256IntNon, GenerateEin: sha224_256GenEin, Expected: sha224_256Result},
			},
		},
		digest.SHA1: {
			HashID: digest.SHA1, SeedLen: 55, BlockLen: 20, OBL: 20,
			MaxBytesPerRequest: maxBytesPerRequest, ReseedInterval: reseedInterval,
			MaxEntropyLen: maxAuxLen, MaxNonceLen: maxAuxLen, MaxPersonalizationLen: maxAuxLen, MaxAdditionalInputLen: maxAuxLen,
			SupportedStrengths: []int{112, 128}, IsFIPS: false, HealthCheckInterval: defaultHealthCheckInterval,
			KATVectors: [4]KATVector{
				{Ein: sha1_112IntEin, Nonce: sha1_112IntNon, Personalization: sha1_112IntPer, Expected: sha1_112Result},
				{Ein: sha1_128IntEin, Nonce: sha1_128IntNon, GenerateEin: sha1_128GenEin, Expected: sha1_128Result},
				{},
				{},
			},
		},
	}
}
