// Package protobuf decodes datasets whose records are protobuf messages. The
// dataset schema is a .proto definition; the content is a JSON array with one
// protojson-encoded message per element.
package protobuf

import (
	"context"
	"fmt"
	"strings"

	"github.com/aevon-lab/sift/internal/dataset"
	jsonformat "github.com/aevon-lab/sift/internal/dataset/formats/json"
	"github.com/bufbuild/protocompile"
	"github.com/ohler55/ojg/oj"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Decoder compiles the dataset schema and unmarshals each record into a
// dynamicpb message.
type Decoder struct{}

// NewDecoder creates a new protobuf decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(ctx context.Context, ds *dataset.Dataset) ([]any, error) {
	if ds.Format != dataset.FormatProtobuf {
		return nil, fmt.Errorf("expected protobuf format, got %s", ds.Format)
	}

	md, err := Compile(ctx, ds.Name, ds.Schema, ds.Message)
	if err != nil {
		return nil, err
	}

	elems, err := jsonformat.ParseList(ds.Content)
	if err != nil {
		return nil, err
	}

	records := make([]any, len(elems))
	for i, elem := range elems {
		msg := dynamicpb.NewMessage(md)
		if err := protojson.Unmarshal([]byte(oj.JSON(elem)), msg); err != nil {
			return nil, fmt.Errorf("record %d is not a valid %s: %w", i, md.FullName(), err)
		}
		records[i] = msg
	}
	return records, nil
}

// Compile parses a .proto definition and returns the descriptor of the named
// message, or of the first top-level message when message is empty.
func Compile(ctx context.Context, name string, schema []byte, message string) (protoreflect.MessageDescriptor, error) {
	// Create a virtual file name for the proto
	fileName := strings.ReplaceAll(name, ".", "_") + ".proto"

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&singleFileResolver{
			fileName: fileName,
			content:  string(schema),
		}),
		SourceInfoMode: protocompile.SourceInfoNone,
	}

	files, err := compiler.Compile(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile proto: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files compiled")
	}

	messages := files[0].Messages()
	if messages.Len() == 0 {
		return nil, fmt.Errorf("proto must define at least one message")
	}
	if message == "" {
		return messages.Get(0), nil
	}
	for i := 0; i < messages.Len(); i++ {
		md := messages.Get(i)
		if string(md.Name()) == message || string(md.FullName()) == message {
			return md, nil
		}
	}
	return nil, fmt.Errorf("message %q not found in proto", message)
}

// singleFileResolver provides proto content for compilation.
type singleFileResolver struct {
	fileName string
	content  string
}

func (r *singleFileResolver) FindFileByPath(path string) (protocompile.SearchResult, error) {
	if path == r.fileName {
		return protocompile.SearchResult{
			Source: strings.NewReader(r.content),
		}, nil
	}
	return protocompile.SearchResult{}, fmt.Errorf("file not found: %s", path)
}
