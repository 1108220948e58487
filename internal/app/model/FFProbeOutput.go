package model

// FFProbeOutput is the subset of `ffprobe -print_format json -show_format`
// that the segmenter reads.
type FFProbeOutput struct {
	Format struct {
		Filename string `json:"filename"`
		Duration string `json:"duration"`
		Size     string `json:"size"`
	} `json:"format"`
}
