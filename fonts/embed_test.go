package fonts

import (
	"bytes"
	"testing"
)

func TestLoadByWeight(t *testing.T) {
	if !bytes.Equal(Load(300), Load(400)) {
		t.Fatalf("300 与 400 应共用常规体")
	}
	if bytes.Equal(Load(400), Load(500)) || bytes.Equal(Load(500), Load(700)) {
		t.Fatalf("不同档位应返回不同字体")
	}
	if !bytes.Equal(Load(600), Load(700)) {
		t.Fatalf("600 与 700 应共用粗体")
	}
	if Name(500) != "Go-Medium" {
		t.Fatalf("Name(500)=%s", Name(500))
	}
	if len(Load(400)) == 0 {
		t.Fatalf("字体数据为空")
	}
}
