package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"ldx/archive"
	"ldx/common"
	"ldx/container"
	"ldx/docerr"
	"ldx/extract"
	"ldx/generate"
	"ldx/state"
)

// ErrUsage marks errors caused by malformed command line.
var ErrUsage = errors.New("incorrect usage")

// Archived entries are read into memory, anything larger is refused.
const maxArchivedSize = 256 << 20

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return fmt.Errorf("no input source has been specified: %w", ErrUsage)
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format, err = common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to text", zap.Error(err))
		env.Format = common.OutputFmtText
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.Password, env.Encoding = cmd.String("password"), cmd.String("encoding")

	// unknown code page would fail every document, better to stop early
	if name := env.DocumentEncoding(); len(name) > 0 {
		if _, err := extract.LookupEncoding(name); err != nil {
			return err
		}
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		archive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if archive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		doc, err := isDocumentFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if doc && len(tail) == 0 {
			data, err := os.ReadFile(head)
			if err != nil {
				return fmt.Errorf("unable to read file: %w", err)
			}
			// single document is all user asked for, its failure is ours
			return processDocument(ctx, data, filepath.Base(head), dst, log)
		}
		return fmt.Errorf("input was not recognized as supported document (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding documents and processes them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		archive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if archive {
			if err := processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		doc, err := isDocumentFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDocument(ctx, data, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processArchive walks all files inside archive, finds documents under
// "pathIn" and processes them.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	var opts []archive.Option
	if cp := state.EnvFromContext(ctx).CodePage; cp != nil {
		opts = append(opts, archive.WithCodePage(cp))
	}

	err = archive.Walk(ctx, path, pathIn, func(name string, e archive.Entry) error {
		doc, err := isDocumentInArchive(e.File)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", name), zap.String("path", e.Path), zap.Error(err))
			return nil
		}
		if !doc {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", name), zap.String("file", e.Path))
			return nil
		}

		count++

		if e.NameErr != nil {
			log.Warn("Unable to convert archive name from specified encoding",
				zap.String("path", e.Path), zap.Error(e.NameErr))
		}

		data, err := e.ReadAll(maxArchivedSize)
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", name), zap.String("file", e.Path), zap.Error(err))
			return nil
		}
		if err := processDocument(ctx, data, filepath.Join(pathOut, filepath.FromSlash(e.Path)), dst, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", name), zap.String("file", e.Path), zap.Error(err))
		}
		return nil
	}, opts...)
	return err
}

func extractOptions(env *state.LocalEnv, log *zap.Logger) extract.Options {
	cfg := &env.Cfg.Document
	return extract.Options{
		Password:          env.DocumentPassword(),
		Encoding:          env.DocumentEncoding(),
		Placeholder:       cfg.Placeholder,
		FlushUnclaimed:    cfg.FlushUnclaimed,
		CollapsePageSpans: cfg.CollapsePageSpans,
		Log:               log,
	}
}

// processDocument processes single document. "src" is part of the source path
// (always including file name) relative to the original path. When actual file
// was specified it will be just base file name without a path. When looking
// inside archive or directory it will be relative path inside archive or
// directory (including base file name). "dst" is the destination directory
// where the extracted file should be written. Nothing is written unless
// extraction succeeds.
func processDocument(ctx context.Context, data []byte, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var docID, outputName string

	log.Info("Extraction starting", zap.String("from", src))
	defer func(start time.Time) {
		// damaged documents should not stop processing of the rest
		if r := recover(); r != nil {
			log.Error("Extraction ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("extraction panic: %v", r)
		} else if rerr == nil {
			log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("id", docID))
		}
	}(time.Now())

	gen, err := generate.New(env.Format, &env.Cfg.Document, log)
	if err != nil {
		return err
	}

	doc, err := extract.Parse(ctx, container.FromBytes(src, data), gen, extractOptions(env, log))
	if err != nil {
		if env.Rpt != nil {
			env.Rpt.StoreData(fmt.Sprintf("failed/%s.txt", filepath.ToSlash(src)), []byte(docerr.Diagnostic(err)+"\n"))
		}
		return fmt.Errorf("unable to extract document (%s): %w", src, err)
	}
	docID = doc.ID

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(doc, src, dst, env.Format, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := writeOutput(outputName, gen); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store extraction result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("document-%s.txt", docID), []byte(doc.String()))
		env.Rpt.Store(fmt.Sprintf("result-%s%s", docID, env.Format.Ext()), outputName)
	}
	return nil
}

func writeOutput(name string, w io.WriterTo) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(name)
		}
	}()
	_, err = w.WriteTo(f)
	return err
}
