package tools

import (
	"os"

	"github.com/golang/glog"
)

// ReadFileOrFail materializes the whole file in memory; the pipeline operates
// on complete byte buffers, never on partial reads.
func ReadFileOrFail(filePath string) []byte {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		glog.Fatal(err)
	}

	return buf
}

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}
