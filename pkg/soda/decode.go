package soda

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// decodeResponse parses one serialized SodaResponse. Unknown fields are
// skipped so newer engines with extended schemas still decode. Any
// malformed data is an error; the caller drops the event.
func decodeResponse(payload []byte) (*Response, error) {
	var resp Response
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, err := varint(b)
			if err != nil {
				return err
			}
			t := MessageType(v)
			resp.Type = &t
		case num == 2 && typ == protowire.BytesType:
			rr, err := decodeRecognitionResult(b)
			if err != nil {
				return err
			}
			resp.RecognitionResult = rr
		case num == 3 && typ == protowire.BytesType:
			ep, err := decodeEndpointEvent(b)
			if err != nil {
				return err
			}
			resp.EndpointEvent = ep
		case num == 4 && typ == protowire.BytesType:
			al, err := decodeAudioLevelInfo(b)
			if err != nil {
				return err
			}
			resp.AudioLevelInfo = al
		case num == 5 && typ == protowire.BytesType:
			li, err := decodeLangIDEvent(b)
			if err != nil {
				return err
			}
			resp.LangIDEvent = li
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func decodeRecognitionResult(payload []byte) (*RecognitionResult, error) {
	var rr RecognitionResult
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			rr.Hypotheses = append(rr.Hypotheses, string(b))
		case num == 2 && typ == protowire.VarintType:
			v, err := varint(b)
			if err != nil {
				return err
			}
			t := ResultType(v)
			rr.ResultType = &t
		case num == 3 && typ == protowire.BytesType:
			ti, err := decodeTimingInfo(b)
			if err != nil {
				return err
			}
			rr.Timing = ti
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func decodeEndpointEvent(payload []byte) (*EndpointEvent, error) {
	var ep EndpointEvent
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, err := varint(b)
			if err != nil {
				return err
			}
			t := EndpointType(v)
			ep.EndpointType = &t
		case num == 2 && typ == protowire.BytesType:
			ti, err := decodeTimingInfo(b)
			if err != nil {
				return err
			}
			ep.Timing = ti
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

func decodeAudioLevelInfo(payload []byte) (*AudioLevelInfo, error) {
	var al AudioLevelInfo
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == 1 && typ == protowire.Fixed32Type:
			v, err := fixed32(b)
			if err != nil {
				return err
			}
			f := math.Float32frombits(v)
			al.RMS = &f
		case num == 2 && typ == protowire.Fixed32Type:
			v, err := fixed32(b)
			if err != nil {
				return err
			}
			f := math.Float32frombits(v)
			al.AudioLevel = &f
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &al, nil
}

func decodeLangIDEvent(payload []byte) (*LangIDEvent, error) {
	var li LangIDEvent
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			s := string(b)
			li.Language = &s
		case num == 2 && typ == protowire.VarintType:
			v, err := varint(b)
			if err != nil {
				return err
			}
			c := int32(v)
			li.ConfidenceLevel = &c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &li, nil
}

func decodeTimingInfo(payload []byte) (*TimingInfo, error) {
	var ti TimingInfo
	err := walkFields(payload, func(num protowire.Number, typ protowire.Type, b []byte) error {
		if typ != protowire.VarintType {
			return nil
		}
		v, err := varint(b)
		if err != nil {
			return err
		}
		switch num {
		case 1:
			ti.AudioStartEpochUsec = int64(v)
		case 2:
			ti.AudioStartTimeUsec = int64(v)
		case 3:
			ti.ElapsedWallTimeUsec = int64(v)
		case 4:
			ti.EventEndTimeUsec = int64(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ti, nil
}

// walkFields iterates the top-level fields of a wire-format message and
// passes each field's raw value bytes to fn. For varint fields the value
// bytes are the varint itself; for length-delimited fields the unwrapped
// contents; for fixed-width fields the fixed-width bytes. Fields fn does
// not recognize are skipped.
func walkFields(payload []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) error) error {
	for len(payload) > 0 {
		num, typ, n := protowire.ConsumeTag(payload)
		if n < 0 {
			return fmt.Errorf("invalid field tag: %w", protowire.ParseError(n))
		}
		payload = payload[n:]

		var value []byte
		switch typ {
		case protowire.VarintType:
			_, n = protowire.ConsumeVarint(payload)
			if n < 0 {
				return fmt.Errorf("field %d: invalid varint: %w", num, protowire.ParseError(n))
			}
			value = payload[:n]
		case protowire.BytesType:
			v, n2 := protowire.ConsumeBytes(payload)
			if n2 < 0 {
				return fmt.Errorf("field %d: invalid length-delimited value: %w", num, protowire.ParseError(n2))
			}
			value, n = v, n2
		case protowire.Fixed32Type:
			_, n = protowire.ConsumeFixed32(payload)
			if n < 0 {
				return fmt.Errorf("field %d: invalid fixed32: %w", num, protowire.ParseError(n))
			}
			value = payload[:n]
		case protowire.Fixed64Type:
			_, n = protowire.ConsumeFixed64(payload)
			if n < 0 {
				return fmt.Errorf("field %d: invalid fixed64: %w", num, protowire.ParseError(n))
			}
			value = payload[:n]
		default:
			// Group types and anything newer are skipped wholesale.
			n = protowire.ConsumeFieldValue(num, typ, payload)
			if n < 0 {
				return fmt.Errorf("field %d: invalid value: %w", num, protowire.ParseError(n))
			}
			payload = payload[n:]
			continue
		}
		if err := fn(num, typ, value); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return nil
}

func varint(b []byte) (uint64, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func fixed32(b []byte) (uint32, error) {
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}
