package upload

import (
	"context"
	"fmt"
)

// Batch uploads several files one after another, e.g. ticket reply
// attachments.
type Batch struct {
	Rules     Rules
	Category  Category
	Presigner Presigner
	Putter    Putter
	// OnProgress receives "Uploading i/N: name" before each upload.
	OnProgress func(status string)
}

// Validate checks every file before anything is sent.
func (b Batch) Validate(files []File) error {
	for _, f := range files {
		if err := b.Rules.Check(f); err != nil {
			return err
		}
	}
	return nil
}

// UploadAll uploads files sequentially in selection order and returns their
// URLs in the same order. The first failure stops the batch; later files are
// never sent and the returned *Failure names the failing file.
func (b Batch) UploadAll(ctx context.Context, files []File) ([]string, error) {
	if err := b.Validate(files); err != nil {
		return nil, err
	}
	s := steps{presigner: b.Presigner, putter: b.Putter, category: b.Category}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		if b.OnProgress != nil {
			b.OnProgress(fmt.Sprintf("Uploading %d/%d: %s", i+1, len(files), f.Name))
		}
		p, err := s.presign(ctx, f)
		if err != nil {
			return urls, err
		}
		if err := s.put(ctx, p, f); err != nil {
			return urls, err
		}
		urls = append(urls, p.FileURL)
	}
	return urls, nil
}
