package main

import (
	"encoding/hex"

	"leb128.dev/varint/leb128"
)

type Request struct {
	Op     string   `json:"op"`
	Value  uint64   `json:"value,omitempty"`
	Values []uint64 `json:"values,omitempty"`
	Hex    string   `json:"hex,omitempty"`
	Count  int      `json:"count,omitempty"`
}

type Response struct {
	Ok       bool     `json:"ok"`
	Err      string   `json:"err,omitempty"`
	Hex      string   `json:"hex,omitempty"`
	Value    *uint64  `json:"value,omitempty"`
	Values   []uint64 `json:"values,omitempty"`
	RestHex  string   `json:"rest_hex,omitempty"`
	Consumed int      `json:"consumed,omitempty"`
}

func handle(req Request) Response {
	switch req.Op {
	case "encode":
		return Response{Ok: true, Hex: hex.EncodeToString(leb128.Encode(req.Value))}

	case "encode_list":
		return Response{Ok: true, Hex: hex.EncodeToString(leb128.EncodeList(req.Values))}

	case "encoded_len":
		return Response{Ok: true, Consumed: leb128.EncodedLen(req.Value)}

	case "decode", "decode_canonical":
		in, err := hex.DecodeString(req.Hex)
		if err != nil {
			return Response{Ok: false, Err: "bad hex"}
		}
		decode := leb128.Decode
		if req.Op == "decode_canonical" {
			decode = leb128.DecodeCanonical
		}
		v, rest, err := decode(in)
		if err != nil {
			return errResp(err)
		}
		return Response{
			Ok:       true,
			Value:    &v,
			RestHex:  hex.EncodeToString(rest),
			Consumed: len(in) - len(rest),
		}

	case "decode_n":
		in, err := hex.DecodeString(req.Hex)
		if err != nil {
			return Response{Ok: false, Err: "bad hex"}
		}
		vals, rest, err := leb128.DecodeN(in, req.Count)
		if err != nil {
			return errResp(err)
		}
		return Response{
			Ok:       true,
			Values:   vals,
			RestHex:  hex.EncodeToString(rest),
			Consumed: len(in) - len(rest),
		}

	case "decode_list":
		in, err := hex.DecodeString(req.Hex)
		if err != nil {
			return Response{Ok: false, Err: "bad hex"}
		}
		vals, err := leb128.DecodeList(in)
		if err != nil {
			return errResp(err)
		}
		return Response{Ok: true, Values: vals, Consumed: len(in)}

	default:
		return Response{Ok: false, Err: "unknown op"}
	}
}

func errResp(err error) Response {
	if code, ok := leb128.CodeOf(err); ok {
		return Response{Ok: false, Err: string(code)}
	}
	return Response{Ok: false, Err: err.Error()}
}
