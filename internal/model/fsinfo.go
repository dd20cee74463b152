package model

// FSInfo ties a parsed in-memory object back to its physical source on
// disk, so errors can name the file a problematic definition came from.
type FSInfo struct {
	FilePath string
}

func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}
