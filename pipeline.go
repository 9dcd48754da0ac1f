package fbdump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	dumpSuffix       = "_data.txt"
	descriptorSuffix = "_format.txt"
)

type job struct {
	dump       string
	descriptor string
	image      string
}

func (c *Converter) findDumps(ctx context.Context, base string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, this also skips any temporary files we're writing
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), dumpSuffix) {
				return nil
			}

			prefix := strings.TrimSuffix(file, dumpSuffix)
			j := job{
				dump:       file,
				descriptor: prefix + descriptorSuffix,
				image:      prefix + "." + c.opts.Extension,
			}

			if _, err := os.Stat(j.descriptor); err != nil {
				if os.IsNotExist(err) {
					c.logger.Printf("No descriptor for \"%s\"\n", file)
					return nil
				}
				return err
			}

			select {
			case out <- j:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) convertWorker(ctx context.Context, in <-chan job) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := c.Convert(j.dump, j.image, j.descriptor); err != nil {
				errc <- fmt.Errorf("%s: %w", j.dump, err)
				return
			}
		}
	}()
	return errc, nil
}

// Wait for every stage to finish, cancelling the rest on the first error so
// nothing is still writing once this returns
func waitForPipeline(cancelFunc context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancelFunc()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path looking for "<name>_data.txt"
// dumps with a matching "<name>_format.txt" descriptor and converts each pair
// to "<name>.<ext>"
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	jobs, errc, err := c.findDumps(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.opts.Workers; i++ {
		errc, err := c.convertWorker(ctx, jobs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
