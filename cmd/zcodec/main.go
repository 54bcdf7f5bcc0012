package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/iamNilotpal/zcodec/config"
	"github.com/iamNilotpal/zcodec/internal/core/services/codec"
	"github.com/iamNilotpal/zcodec/pkg/checksum"
	"github.com/iamNilotpal/zcodec/pkg/errors"
	"github.com/iamNilotpal/zcodec/pkg/fs"
	"github.com/iamNilotpal/zcodec/pkg/logger"
)

// Payloads above this size are streamed instead of held in memory.
const streamThreshold = 32 * 1024 * 1024 // 32MiB

func main() {
	logger := logger.New("zcodec")
	defer logger.Sync()

	decompress := flag.Bool("d", false, "decompress instead of compress")
	level := flag.Uint("level", 0, "compression level (1-4, 0 = configured default)")
	verify := flag.Bool("verify", false, "round-trip the result and verify its checksum")
	fallback := flag.Bool("fallback", false, "on compression failure, copy the input unchanged")
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: zcodec [flags] <input> <output>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Infow("load config error", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	zc, err := codec.New(cfg.CodecOptions())
	if err != nil {
		if errors.IsValidationError(err) {
			err := errors.GetValidationError(err)
			logger.Infow("create codec error", "field", err.Field, "value", err.Value, "error", err.Err)
		} else {
			logger.Infow("create codec error", "error", err)
		}
		os.Exit(1)
	}
	defer zc.Close(context.Background())

	input, output := flag.Arg(0), flag.Arg(1)

	if ok, statErr := fs.Exists(input); statErr != nil {
		logger.Infow("stat input error", "input", input, "error", statErr)
		os.Exit(1)
	} else if !ok {
		logger.Infow("input file does not exist", "input", input)
		os.Exit(1)
	}

	if *decompress {
		err = decompressFile(zc, input, output)
	} else {
		err = compressFile(zc, logger, input, output, uint8(*level), *verify, *fallback)
	}
	if err != nil {
		logger.Infow("transfer error", "input", input, "output", output, "retryable", errors.IsRetryable(err), "error", err)
		os.Exit(1)
	}

	logger.Infow("done", "input", input, "output", output)
}

func compressFile(
	zc *codec.Codec, log *zap.SugaredLogger,
	input, output string, level uint8, verify, fallback bool,
) error {
	ctx := context.Background()

	size, err := fs.FileSize(input)
	if err != nil {
		return err
	}

	if size >= streamThreshold {
		err = compressStream(ctx, zc, input, output, level, verify)
	} else {
		err = compressOneShot(ctx, zc, input, output, level, verify)
	}

	if err != nil && fallback && errors.IsCodecError(err) {
		// Policy decision demonstrated here, not in the codec: a failed
		// compression never corrupts the original payload, so delivering it
		// uncompressed is always possible.
		log.Infow("compression failed, delivering uncompressed", "input", input, "error", err)
		return copyFile(input, output)
	}
	if err != nil {
		return err
	}

	// The codec never touches transport metadata; the marker is the
	// caller's to attach.
	log.Infow("compressed", "content-encoding", zc.ContentEncoding(), "input-bytes", size)
	return nil
}

func compressOneShot(ctx context.Context, zc *codec.Codec, input, output string, level uint8, verify bool) error {
	payload, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	var frame []byte
	if level == 0 {
		frame, err = zc.Compress(ctx, payload)
	} else {
		frame, err = zc.CompressLevel(ctx, payload, level)
	}
	if err != nil {
		return err
	}

	if verify {
		restored, err := zc.Decompress(ctx, frame)
		if err != nil {
			return err
		}
		if !checksum.VerifyChecksum(restored, checksum.Checksum(payload)) {
			return fmt.Errorf("verification failed: decompressed payload does not match input")
		}
	}

	return os.WriteFile(output, frame, 0644)
}

func compressStream(ctx context.Context, zc *codec.Codec, input, output string, level uint8, verify bool) error {
	source, err := fs.OpenFile(input)
	if err != nil {
		return err
	}
	defer source.Close()

	sink, err := fs.CreateFile(output)
	if err != nil {
		return err
	}
	defer sink.Close()

	// Digest the payload as it streams past; the input is too large to
	// hold for a one-shot comparison.
	digest := checksum.New()
	reader := io.TeeReader(source, digest)

	if level == 0 {
		err = zc.CompressStream(ctx, reader, sink)
	} else {
		err = zc.CompressStreamLevel(ctx, reader, sink, level)
	}
	if err != nil {
		return err
	}

	if err := sink.Sync(); err != nil {
		return err
	}

	if verify {
		return verifyStreamed(ctx, zc, output, digest.Sum64())
	}
	return nil
}

// verifyStreamed decompresses the written frame back through the streaming
// path and compares its digest against the one taken from the input.
func verifyStreamed(ctx context.Context, zc *codec.Codec, output string, expected uint64) error {
	frame, err := fs.OpenFile(output)
	if err != nil {
		return err
	}
	defer frame.Close()

	digest := checksum.New()
	if err := zc.DecompressStream(ctx, frame, digest); err != nil {
		return err
	}

	if digest.Sum64() != expected {
		return fmt.Errorf("verification failed: decompressed payload does not match input")
	}
	return nil
}

func decompressFile(zc *codec.Codec, input, output string) error {
	ctx := context.Background()

	source, err := fs.OpenFile(input)
	if err != nil {
		return err
	}
	defer source.Close()

	sink, err := fs.CreateFile(output)
	if err != nil {
		return err
	}
	defer sink.Close()

	// Streamed frames carry no content size; the streaming path handles
	// both kinds, so the CLI always decompresses in bounded memory.
	if err := zc.DecompressStream(ctx, source, sink); err != nil {
		return err
	}

	return sink.Sync()
}

func copyFile(input, output string) error {
	source, err := fs.OpenFile(input)
	if err != nil {
		return err
	}
	defer source.Close()

	sink, err := fs.CreateFile(output)
	if err != nil {
		return err
	}
	defer sink.Close()

	if _, err := io.Copy(sink, source); err != nil {
		return err
	}
	return sink.Sync()
}
