package common

import (
	"encoding/json"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func ExpandTilde(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		panic(err)
	}
	return filepath.Join(usr.HomeDir, path[2:])
}

func MarshalJSONOrPanic(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// DecodeHex accepts hex with or without the 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}

func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
