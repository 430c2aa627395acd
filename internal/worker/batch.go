package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doctag/internal/pipeline"
)

// FileProcessor processes one document path.
type FileProcessor interface {
	ProcessFile(ctx context.Context, path string) (*pipeline.Result, error)
}

// FileJob runs one document through a processor.
type FileJob struct {
	Path      string
	Processor FileProcessor
}

// FileResult pairs a path with its outcome. A nil Result with a non-nil
// Err means the document could not be processed at all.
type FileResult struct {
	Path   string
	Result *pipeline.Result
	Err    error
}

func (r *FileResult) GetError() error { return r.Err }

func (j *FileJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessFile(ctx, j.Path)
	return &FileResult{Path: j.Path, Result: result, Err: err}
}

// BatchProcessor fans document paths out over a worker pool.
type BatchProcessor struct {
	processor   FileProcessor
	concurrency int
}

func NewBatchProcessor(processor FileProcessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessPaths runs every path through the pool and returns results sorted
// by path, so batch output order is stable regardless of completion order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	for _, path := range paths {
		pool.Submit(&FileJob{Path: path, Processor: b.processor})
	}

	raw := pool.Wait()
	results := make([]*FileResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*FileResult)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// CollectFiles resolves an input path into the list of documents to
// process. A file is returned as-is; a directory is walked recursively,
// keeping files whose extension is on the allow-list and skipping dotfiles.
func CollectFiles(input string, extensions []string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var paths []string
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() && path != input {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if allowed[strings.ToLower(filepath.Ext(name))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
