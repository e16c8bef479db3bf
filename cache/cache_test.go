package cache

import (
	"context"
	goerrors "errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/wippyai/masm/ast"
	"github.com/wippyai/masm/opcode"
)

func openTest(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

var testBody = []ast.Node{
	ast.Instruction{Op: opcode.PushFelt, Imm: ast.Felt(10)},
	ast.Repeat{Count: 3, Body: []ast.Node{
		ast.Instruction{Op: opcode.Dup0},
		ast.Instruction{Op: opcode.Mul},
	}},
	ast.Instruction{Op: opcode.ExecLocal, Imm: uint16(2)},
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	src := []byte("begin push.10 repeat.3 dup mul end exec.foo end")

	if _, ok, err := c.Get(ctx, src); ok || err != nil {
		t.Fatalf("Get before Put: ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, src, testBody); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(ctx, src)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, testBody) {
		t.Errorf("Get = %#v, want %#v", got, testBody)
	}

	n, err := c.Len(ctx)
	if err != nil || n != 1 {
		t.Errorf("Len = %d, %v; want 1", n, err)
	}
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	src := []byte("begin drop end")

	if err := c.Put(ctx, src, testBody); err != nil {
		t.Fatalf("Put: %v", err)
	}
	replacement := []ast.Node{ast.Instruction{Op: opcode.Drop}}
	if err := c.Put(ctx, src, replacement); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(ctx, src)
	if err != nil || !ok || !reflect.DeepEqual(got, replacement) {
		t.Errorf("Get = %#v, %v, %v", got, ok, err)
	}
	if n, _ := c.Len(ctx); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}
}

func TestPutRejectsInvalidBody(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	err := c.Put(ctx, []byte("x"), []ast.Node{ast.Instruction{Op: opcode.OpCode(245)}})
	if !goerrors.Is(err, opcode.ErrInvalidOpcode) {
		t.Errorf("Put = %v, want invalid opcode", err)
	}
	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
}

func TestGetEvictsUndecodable(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	src := []byte("written by a newer reader")

	// One instruction tagged with a byte from the reserved gap.
	if err := c.putRaw(ctx, Key(src), FormatVersion, []byte{0x01, 0x00, 247}); err != nil {
		t.Fatalf("putRaw: %v", err)
	}

	_, ok, err := c.Get(ctx, src)
	if ok {
		t.Fatal("undecodable entry was served")
	}
	if !goerrors.Is(err, opcode.ErrInvalidOpcode) {
		t.Fatalf("Get = %v, want invalid opcode", err)
	}
	if tag, ok := opcode.InvalidTag(err); !ok || tag != 247 {
		t.Errorf("InvalidTag = %d, %v; want 247", tag, ok)
	}

	if n, _ := c.Len(ctx); n != 0 {
		t.Errorf("entry not evicted, Len = %d", n)
	}
	if _, ok, err := c.Get(ctx, src); ok || err != nil {
		t.Errorf("second Get: ok=%v err=%v, want clean miss", ok, err)
	}
}

func TestGetVersionMismatchIsMiss(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	src := []byte("old")

	data, err := ast.EncodeBody(testBody)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	if err := c.putRaw(ctx, Key(src), FormatVersion+1, data); err != nil {
		t.Fatalf("putRaw: %v", err)
	}
	if _, ok, err := c.Get(ctx, src); ok || err != nil {
		t.Errorf("Get: ok=%v err=%v, want miss", ok, err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)
	src := []byte("begin add end")

	if err := c.Put(ctx, src, testBody); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Delete(ctx, src); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, src); ok {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, src); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	src := []byte("persisted")

	c, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put(ctx, src, testBody); err != nil {
		t.Fatalf("Put: %v", err)
	}
	c.Close()

	c, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	got, ok, err := c.Get(ctx, src)
	if err != nil || !ok || !reflect.DeepEqual(got, testBody) {
		t.Errorf("Get after reopen = %#v, %v, %v", got, ok, err)
	}
	if c.Path() != path {
		t.Errorf("Path = %q, want %q", c.Path(), path)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := []byte{byte(i)}
			if err := c.Put(ctx, src, testBody); err != nil {
				t.Errorf("Put %d: %v", i, err)
				return
			}
			if _, ok, err := c.Get(ctx, src); !ok || err != nil {
				t.Errorf("Get %d: ok=%v err=%v", i, ok, err)
			}
		}(i)
	}
	wg.Wait()

	if n, _ := c.Len(ctx); n != 8 {
		t.Errorf("Len = %d, want 8", n)
	}
}

func TestKey(t *testing.T) {
	a, b := Key([]byte("a")), Key([]byte("b"))
	if a == b {
		t.Error("distinct sources share a key")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64", len(a))
	}
	if Key([]byte("a")) != a {
		t.Error("Key is not deterministic")
	}
}
