package reflectx

// BytesDecoder defines an interface for decoding an object from raw bytes.
// Argument types implementing it take part in the conversion chain after the
// standard unmarshaling interfaces.
type BytesDecoder interface {
	DecodeFromBytes([]byte) error
}
