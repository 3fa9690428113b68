package main

import "github.com/jadenpxrk/sizeband/majority"

// FileInfo holds information about a scanned file.
type FileInfo struct {
	Path string `csv:"path"`
	Size int64  `csv:"size"`
}

// InputReport is the outcome of analyzing one input path.
type InputReport struct {
	Input  string
	Files  int // sizes read from the input
	Result majority.Result
	Err    error
}

// Summary holds aggregated counts over every input.
type Summary struct {
	TotalInputs  int
	FailedInputs int
	TotalFiles   int
	TotalSize    int64
}

func summarize(reports []InputReport) Summary {
	var s Summary
	for _, r := range reports {
		s.TotalInputs++
		if r.Err != nil {
			s.FailedInputs++
			continue
		}
		s.TotalFiles += r.Files
		s.TotalSize += r.Result.Projection.TotalBytes
	}
	return s
}
