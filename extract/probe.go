package extract

import (
	"go.uber.org/zap"

	"ldx/common"
	"ldx/container"
	"ldx/dialect"
	"ldx/dialect/write"
	"ldx/docerr"
)

// Streams which mark compound file as encrypted package.
var encryptionStreams = []string{"EncryptionInfo", "EncryptedPackage"}

// Dialects returns registry of all supported dialects.
func Dialects() *dialect.Registry {
	return dialect.NewRegistry(write.New())
}

// Probe detects whether input can be parsed. It never fails and never changes
// input.
func Probe(in *container.Input) dialect.Result {
	_, _, res := resolve(Dialects(), in)
	return res
}

func encrypted(in *container.Input) bool {
	if !in.Structured() {
		return false
	}
	for _, name := range encryptionStreams {
		if in.HasStream(name) {
			return true
		}
	}
	return false
}

// resolve finds dialect for input. For compound files every stream is tried
// when container itself is not recognized, returned input is the one dialect
// accepted.
func resolve(reg *dialect.Registry, in *container.Input) (dialect.Dialect, *container.Input, dialect.Result) {
	if encrypted(in) {
		return nil, in, dialect.Result{
			Confidence: common.ConfidenceSupportedEncrypted,
			Kind:       common.DocumentKindText,
		}
	}
	if d, res := reg.Probe(in); d != nil {
		return d, in, res
	}
	if !in.Structured() {
		return nil, in, dialect.Result{Confidence: common.ConfidenceNone}
	}
	names, err := in.Streams()
	if err != nil {
		return nil, in, dialect.Result{Confidence: common.ConfidenceNone}
	}
	for _, name := range names {
		stream, err := in.Stream(name)
		if err != nil {
			continue
		}
		if d, res := reg.Probe(stream); d != nil {
			return d, stream, res
		}
	}
	return nil, in, dialect.Result{Confidence: common.ConfidenceNone}
}

// open resolves dialect and opens document with it.
func open(reg *dialect.Registry, in *container.Input, opts dialect.Options, log *zap.Logger) (dialect.Document, dialect.Result, error) {
	d, src, res := resolve(reg, in)
	switch res.Confidence {
	case common.ConfidenceSupportedEncrypted:
		if len(opts.Password) > 0 {
			log.Debug("Password was provided but encrypted packages cannot be decrypted")
		}
		return nil, res, docerr.New(docerr.KindEncrypted, "open document", "%s is an encrypted package", in.Name())
	case common.ConfidenceNone:
		return nil, res, docerr.New(docerr.KindUnsupported, "open document", "%s is not recognized", in.Name())
	}
	log.Debug("Dialect detected", zap.String("dialect", d.Tag()), zap.String("input", src.Name()))

	doc, err := d.Open(src, opts)
	if err != nil {
		return nil, res, err
	}
	return doc, res, nil
}
