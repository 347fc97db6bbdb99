package fieldgen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entitySource = `package shop

import "time"

type Order struct {
	pid           string
	orderItemName string
	createDate    time.Time
}

func (o Order) GetPid() string { return o.pid }
func (o *Order) GetOrderItemName() string { return o.orderItemName }
func (o Order) GetCreateDate() time.Time { return o.createDate }
func (o Order) getPid() string { return o.pid }
func (o Order) Name() string { return o.orderItemName }
func (o Order) GetWithArg(x int) string { return "" }
func (o Order) GetPair() (string, error) { return "", nil }
func (o Order) Get() string { return "" }

type Customer struct{ name string }

func (c Customer) GetName() string { return c.name }

type Empty struct{}
`

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir
}

func TestScanCollectsGetters(t *testing.T) {
	dir := writePackage(t, map[string]string{"order.go": entitySource})

	pkg, err := Scan(dir, []string{"Order", "Customer"}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "shop", pkg.Name)
	require.Len(t, pkg.Targets, 2)

	assert.Equal(t, Target{Type: "Order", Getters: []Getter{
		{Method: "GetPid", Field: "Pid", Name: "pid"},
		{Method: "GetOrderItemName", Field: "OrderItemName", Name: "orderItemName"},
		{Method: "GetCreateDate", Field: "CreateDate", Name: "createDate"},
	}}, pkg.Targets[0])
	assert.Equal(t, "Customer", pkg.Targets[1].Type)
}

func TestScanErrors(t *testing.T) {
	dir := writePackage(t, map[string]string{"order.go": entitySource})

	_, err := Scan(dir, []string{"Missing"}, "", nil)
	assert.ErrorContains(t, err, "not declared")

	_, err = Scan(dir, []string{"Empty"}, "", nil)
	assert.ErrorContains(t, err, "no getter methods")

	_, err = Scan(t.TempDir(), []string{"Order"}, "", nil)
	assert.ErrorContains(t, err, "no Go files")

	broken := writePackage(t, map[string]string{"broken.go": "package shop\nfunc {"})
	_, err = Scan(broken, []string{"Order"}, "", nil)
	assert.ErrorContains(t, err, "parse")
}

func TestRunWritesParsableFile(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"order.go":      entitySource,
		"order_test.go": "package shop\n\nfunc (o Order) GetFromTest() int { return 0 }\n",
	})

	output, err := Run(&Config{Dir: dir, Types: []string{"Order"}, Output: "order_fields_gen.go"}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "order_fields_gen.go"), output)

	src, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(src)

	assert.Contains(t, text, "// Code generated by fieldgen. DO NOT EDIT.")
	assert.Contains(t, text, `import "github.com/gabisonia/go-specification/criteria"`)
	assert.Contains(t, text, "var OrderFields = struct {")
	assert.Contains(t, text, `criteria.Named[Order]("orderItemName")`)
	assert.NotContains(t, text, "FromTest")

	file, err := parser.ParseFile(token.NewFileSet(), output, src, 0)
	require.NoError(t, err)
	assert.Equal(t, "shop", file.Name.Name)

	// A second run ignores the previous output.
	_, err = Run(&Config{Dir: dir, Types: []string{"Order"}, Output: "order_fields_gen.go"}, nil)
	require.NoError(t, err)
	again, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestRenderIsFormatted(t *testing.T) {
	src, err := Render(&Package{
		Name: "shop",
		Targets: []Target{{
			Type:    "Customer",
			Getters: []Getter{{Method: "GetName", Field: "Name", Name: "name"}},
		}},
	})
	require.NoError(t, err)

	want := `// Code generated by fieldgen. DO NOT EDIT.

package shop

import "github.com/gabisonia/go-specification/criteria"

// CustomerFields holds the field tags of Customer.
var CustomerFields = struct {
	Name criteria.Field[Customer]
}{
	Name: criteria.Named[Customer]("name"),
}
`
	assert.Equal(t, want, string(src))
}
