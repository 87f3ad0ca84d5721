package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"aescrypt/internal/core/domain"
	"aescrypt/internal/crypto/aes"
	"aescrypt/internal/crypto/padding"
	"aescrypt/internal/encryption/service"
)

const usage = `Usage: aescrypt <command> [flags]

Commands:
  encrypt   Encrypt a byte stream
  decrypt   Decrypt a byte stream
  keygen    Generate a random key file

Run 'aescrypt <command> -h' for flags.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "encrypt":
		runTransform(os.Args[2:], true)
	case "decrypt":
		runTransform(os.Args[2:], false)
	case "keygen":
		runKeygen(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "aescrypt: "+format+"\n", args...)
	os.Exit(1)
}

type transformFlags struct {
	keyFile    string
	cbc        bool
	ecb        bool
	padding    string
	ivFile     string
	randomIV   bool
	inputFile  string
	stdin      bool
	outputFile string
	stdout     bool
}

func parseTransformFlags(name string, args []string, encrypt bool) *transformFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	f := &transformFlags{}
	fs.StringVar(&f.keyFile, "key-file", "", "path to a 16/24/32-byte key file (required)")
	fs.BoolVar(&f.cbc, "cbc", false, "use CBC mode")
	fs.BoolVar(&f.ecb, "ecb", false, "use ECB mode")
	fs.StringVar(&f.padding, "padding", "pkcs7", "padding policy: pkcs7, zero or none")
	fs.StringVar(&f.ivFile, "iv-file", "", "path to a 16-byte IV file (CBC only)")
	if encrypt {
		fs.BoolVar(&f.randomIV, "random-iv", false, "generate a random IV and persist it next to the output (CBC only)")
	}
	fs.StringVar(&f.inputFile, "input-file", "", "read input from a file")
	fs.BoolVar(&f.stdin, "stdin", false, "read input from stdin")
	fs.StringVar(&f.outputFile, "output-file", "", "write output to a file")
	fs.BoolVar(&f.stdout, "stdout", false, "write output to stdout")
	fs.Parse(args)

	if f.keyFile == "" {
		fail("--key-file is required")
	}
	if f.cbc == f.ecb {
		fail("exactly one of --cbc or --ecb is required")
	}
	if (f.inputFile == "") == !f.stdin {
		fail("exactly one of --input-file or --stdin is required")
	}
	if (f.outputFile == "") == !f.stdout {
		fail("exactly one of --output-file or --stdout is required")
	}
	if f.ecb && (f.ivFile != "" || f.randomIV) {
		fail("IV flags only apply to CBC mode")
	}
	if f.cbc {
		if encrypt {
			if (f.ivFile != "") == f.randomIV {
				fail("CBC encryption requires exactly one of --iv-file or --random-iv")
			}
			if f.randomIV && f.stdout {
				fail("--random-iv needs --output-file to derive the IV file name")
			}
		} else if f.ivFile == "" {
			fail("CBC decryption requires --iv-file")
		}
	}
	return f
}

func runTransform(args []string, encrypt bool) {
	name := "decrypt"
	if encrypt {
		name = "encrypt"
	}
	f := parseTransformFlags(name, args, encrypt)

	pol, err := padding.ParsePolicy(f.padding)
	if err != nil {
		fail("%v", err)
	}

	key, err := os.ReadFile(f.keyFile)
	if err != nil {
		fail("failed to read key file: %v", err)
	}

	var iv []byte
	if f.ivFile != "" {
		iv, err = os.ReadFile(f.ivFile)
		if err != nil {
			fail("failed to read IV file: %v", err)
		}
	}

	mode := domain.ECB
	if f.cbc {
		mode = domain.CBC
	}

	in := io.Reader(os.Stdin)
	if f.inputFile != "" {
		file, err := os.Open(f.inputFile)
		if err != nil {
			fail("failed to open input file: %v", err)
		}
		defer file.Close()
		in = file
	}

	input := domain.TransformInput{
		Reader: in,
		Key:    key,
		IV:     iv,
		Options: domain.TransformOptions{
			Mode:    mode,
			Padding: pol,
		},
	}

	codec := service.NewAESService()

	var output *domain.TransformOutput
	if encrypt {
		output, err = codec.Encrypt(context.Background(), input)
	} else {
		output, err = codec.Decrypt(context.Background(), input)
	}
	if err != nil {
		fail("%v", err)
	}

	out := io.Writer(os.Stdout)
	if f.outputFile != "" {
		file, err := os.Create(f.outputFile)
		if err != nil {
			fail("failed to create output file: %v", err)
		}
		defer file.Close()
		out = file
	}

	if _, err := io.Copy(out, output.Reader); err != nil {
		fail("%v", err)
	}

	// Persist a generated IV next to the ciphertext. The IV travels
	// out-of-band; it is never embedded in the output stream.
	if encrypt && f.randomIV {
		ivPath := f.outputFile + ".iv"
		if err := os.WriteFile(ivPath, output.IV, 0600); err != nil {
			fail("failed to save IV file: %v", err)
		}
		fmt.Fprintf(os.Stderr, "IV saved to: %s\n", ivPath)
	}
}

func runKeygen(args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	size := fs.Int("size", 32, "key size in bytes: 16, 24 or 32")
	outputFile := fs.String("output-file", "", "path to write the key file (required)")
	fs.Parse(args)

	if *outputFile == "" {
		fail("--output-file is required")
	}

	key, err := aes.GenerateKey(*size)
	if err != nil {
		fail("%v", err)
	}
	if err := os.WriteFile(*outputFile, key, 0600); err != nil {
		fail("failed to save key file: %v", err)
	}
	fmt.Fprintf(os.Stderr, "key saved to: %s\n", *outputFile)
}
