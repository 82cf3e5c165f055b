package proto

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec selects the frame encoding of a connection
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

// ParseCodec maps a query value to a codec; anything unknown is JSON
func ParseCodec(s string) Codec {
	switch s {
	case "msgpack", "mp":
		return CodecMsgpack
	}
	return CodecJSON
}

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

// Binary reports whether frames must be sent as binary websocket messages
func (c Codec) Binary() bool {
	return c == CodecMsgpack
}

// Encode marshals v with the codec
func (c Codec) Encode(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if c == CodecMsgpack {
		data, err = msgpack.Marshal(v)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s frame: %w", c, err)
	}
	return data, nil
}

// Decode unmarshals data into v with the codec
func (c Codec) Decode(data []byte, v any) error {
	var err error
	if c == CodecMsgpack {
		err = msgpack.Unmarshal(data, v)
	} else {
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s frame: %w", c, err)
	}
	return nil
}
