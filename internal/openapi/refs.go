package openapi

import (
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oasdoc/internal/schema"
)

// refResolver inlines "$ref" nodes, producing a tree which no longer contains references.
// The source trees are never modified, every mapping and sequence on the path is copied.
type refResolver struct {
	files    map[string]*yaml.Node
	readFile func(name string) ([]byte, error)
}

func newRefResolver() *refResolver {
	return &refResolver{
		files:    make(map[string]*yaml.Node),
		readFile: os.ReadFile,
	}
}

// Dereference loads the file and returns its root node with all references inlined.
func (r *refResolver) Dereference(path string) (*yaml.Node, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s path", path)
	}
	root, err := r.load(path)
	if err != nil {
		return nil, err
	}
	return r.resolve(root, path, nil)
}

func (r *refResolver) load(path string) (*yaml.Node, error) {
	if root, ok := r.files[path]; ok {
		return root, nil
	}
	data, err := r.readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	root := schema.Unwrap(&doc)
	if root == nil || root.Kind == 0 {
		return nil, errors.Errorf("%s is empty", path)
	}
	r.files[path] = root
	return root, nil
}

// resolve returns a copy of node with references inlined.
// stack holds the references being inlined on the current branch,
// a reference which is already on it is left in place to break the cycle.
func (r *refResolver) resolve(node *yaml.Node, file string, stack []string) (*yaml.Node, error) {
	node = schema.Unwrap(node)
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		if ref := refValue(node); ref != "" {
			return r.resolveRef(node, ref, file, stack)
		}
		return r.resolveChildren(node, file, stack)
	case yaml.SequenceNode:
		return r.resolveChildren(node, file, stack)
	default:
		return node, nil
	}
}

func (r *refResolver) resolveChildren(node *yaml.Node, file string, stack []string) (*yaml.Node, error) {
	out := *node
	out.Content = make([]*yaml.Node, 0, len(node.Content))
	for i, child := range node.Content {
		// Mapping keys are plain scalars.
		if node.Kind == yaml.MappingNode && i%2 == 0 {
			out.Content = append(out.Content, child)
			continue
		}
		resolved, err := r.resolve(child, file, stack)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, resolved)
	}
	return &out, nil
}

func (r *refResolver) resolveRef(node *yaml.Node, ref, file string, stack []string) (*yaml.Node, error) {
	targetFile, pointer, err := splitRef(ref, file)
	if err != nil {
		return nil, err
	}
	key := targetFile + "#" + pointer
	if slices.Contains(stack, key) {
		return node, nil
	}
	root, err := r.load(targetFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %q reference", ref)
	}
	target, err := followPointer(root, pointer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %q reference in %s", ref, file)
	}
	return r.resolve(target, targetFile, append(slices.Clip(stack), key))
}

func refValue(node *yaml.Node) string {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "$ref" && node.Content[i+1].Kind == yaml.ScalarNode {
			return node.Content[i+1].Value
		}
	}
	return ""
}

// splitRef splits the reference into an absolute file path and a JSON pointer.
func splitRef(ref, currentFile string) (file, pointer string, err error) {
	location, pointer, _ := strings.Cut(ref, "#")
	if strings.Contains(location, "://") {
		return "", "", errors.Wrapf(ErrUnresolvedReference, "remote reference %q is not supported", ref)
	}
	switch {
	case location == "":
		file = currentFile
	case filepath.IsAbs(location):
		file = filepath.Clean(location)
	default:
		file = filepath.Join(filepath.Dir(currentFile), location)
	}
	return file, pointer, nil
}

// followPointer evaluates a JSON pointer (RFC 6901) against the node.
func followPointer(root *yaml.Node, pointer string) (*yaml.Node, error) {
	if pointer == "" || pointer == "/" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, errors.Wrapf(ErrUnresolvedReference, "invalid JSON pointer %q", pointer)
	}
	node := root
	for _, token := range strings.Split(pointer[1:], "/") {
		if unescaped, err := url.PathUnescape(token); err == nil {
			token = unescaped
		}
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		if node = schema.Unwrap(node); node == nil {
			return nil, errors.Wrapf(ErrUnresolvedReference, "%q not found", pointer)
		}
		var next *yaml.Node
		switch node.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == token {
					next = node.Content[i+1]
					break
				}
			}
		case yaml.SequenceNode:
			if idx, err := strconv.Atoi(token); err == nil && idx >= 0 && idx < len(node.Content) {
				next = node.Content[idx]
			}
		}
		if next == nil {
			return nil, errors.Wrapf(ErrUnresolvedReference, "%q not found", pointer)
		}
		node = next
	}
	return node, nil
}
