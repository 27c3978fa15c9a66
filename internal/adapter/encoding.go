package adapter

import "encoding/base64"

// Base64 wraps standard base64 so the compositor's data-URI inlining and the
// ensurance metadata decoder can be exercised against a mock
//
//go:generate mockgen -source=encoding.go -destination=../mocks/encoding.go -package=mocks -mock_names=Base64=MockBase64
type Base64 interface {
	Encode(data []byte) string
	Decode(data string) ([]byte, error)
}

type stdBase64 struct{}

func NewBase64() Base64 {
	return &stdBase64{}
}

func (b *stdBase64) Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func (b *stdBase64) Decode(data string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(data)
}
