package geom

import (
	"math"
	"testing"
)

const vecEps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < vecEps
}

// TestVecAddSub 测试向量加减互逆
func TestVecAddSub(t *testing.T) {
	a := V(3, -4)
	b := V(-1.5, 2.5)

	sum := a.Add(b)
	if !almostEqual(sum.X, 1.5) || !almostEqual(sum.Y, -1.5) {
		t.Errorf("Add: got %v, want (1.5, -1.5)", sum)
	}

	// 加后再减应回到原向量
	back := sum.Sub(b)
	if !almostEqual(back.X, a.X) || !almostEqual(back.Y, a.Y) {
		t.Errorf("Add then Sub: got %v, want %v", back, a)
	}
}

// TestVecLength 测试长度与长度平方
func TestVecLength(t *testing.T) {
	v := V(3, 4)
	if !almostEqual(v.Length(), 5) {
		t.Errorf("Length: got %v, want 5", v.Length())
	}
	if !almostEqual(v.LengthSq(), 25) {
		t.Errorf("LengthSq: got %v, want 25", v.LengthSq())
	}
}

// TestVecNormalized 测试归一化
func TestVecNormalized(t *testing.T) {
	n := V(10, 0).Normalized()
	if !almostEqual(n.X, 1) || !almostEqual(n.Y, 0) {
		t.Errorf("Normalized: got %v, want (1, 0)", n)
	}
	if !almostEqual(V(3, -4).Normalized().Length(), 1) {
		t.Error("Normalized vector should have length 1")
	}

	// 零向量归一化返回零向量，不产生 NaN
	z := V(0, 0).Normalized()
	if !z.IsZero() {
		t.Errorf("Normalized zero vector: got %v, want zero", z)
	}
	if math.IsNaN(z.X) || math.IsNaN(z.Y) {
		t.Error("Normalized zero vector produced NaN")
	}
}

// TestVecDotCross 测试点积和叉积
func TestVecDotCross(t *testing.T) {
	a := V(1, 0)
	b := V(0, 1)

	if !almostEqual(a.Dot(b), 0) {
		t.Errorf("Dot of perpendicular vectors: got %v, want 0", a.Dot(b))
	}
	if !almostEqual(a.Cross(b), 1) {
		t.Errorf("Cross: got %v, want 1", a.Cross(b))
	}
	if !almostEqual(b.Cross(a), -1) {
		t.Errorf("Cross is antisymmetric: got %v, want -1", b.Cross(a))
	}
}

// TestVecLerp 测试线性插值端点与中点
func TestVecLerp(t *testing.T) {
	a := V(0, 0)
	b := V(10, 20)

	if got := a.Lerp(b, 0); !got.IsZero() {
		t.Errorf("Lerp t=0: got %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); !almostEqual(got.X, 10) || !almostEqual(got.Y, 20) {
		t.Errorf("Lerp t=1: got %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if !almostEqual(mid.X, 5) || !almostEqual(mid.Y, 10) {
		t.Errorf("Lerp t=0.5: got %v, want (5, 10)", mid)
	}
}

// TestVecRotated 测试旋转90度
func TestVecRotated(t *testing.T) {
	r := V(1, 0).Rotated(math.Pi / 2)
	if !almostEqual(r.X, 0) || !almostEqual(r.Y, 1) {
		t.Errorf("Rotated 90deg: got %v, want (0, 1)", r)
	}

	// 旋转不改变长度
	v := V(3, -7)
	if !almostEqual(v.Rotated(1.234).Length(), v.Length()) {
		t.Error("Rotation should preserve length")
	}
}

// TestVecClampedLength 测试长度钳制
func TestVecClampedLength(t *testing.T) {
	v := V(30, 40) // 长度 50
	c := v.ClampedLength(10)
	if !almostEqual(c.Length(), 10) {
		t.Errorf("ClampedLength: got length %v, want 10", c.Length())
	}

	// 方向保持不变
	dir := v.Normalized()
	cdir := c.Normalized()
	if !almostEqual(dir.X, cdir.X) || !almostEqual(dir.Y, cdir.Y) {
		t.Error("ClampedLength should preserve direction")
	}

	// 未超限时原样返回
	short := V(1, 1)
	if got := short.ClampedLength(10); got != short {
		t.Errorf("ClampedLength below limit: got %v, want %v", got, short)
	}
}

// TestVecClamped 测试分量钳制
func TestVecClamped(t *testing.T) {
	v := V(2000, -5).Clamped(1000)
	if !almostEqual(v.X, 1000) {
		t.Errorf("Clamped X: got %v, want 1000", v.X)
	}
	if !almostEqual(v.Y, -5) {
		t.Errorf("Clamped Y: got %v, want -5", v.Y)
	}

	v = V(-3, -2500).Clamped(1000)
	if !almostEqual(v.Y, -1000) {
		t.Errorf("Clamped negative Y: got %v, want -1000", v.Y)
	}
}

// TestVecDistanceTo 测试两点距离
func TestVecDistanceTo(t *testing.T) {
	if d := V(0, 0).DistanceTo(V(3, 4)); !almostEqual(d, 5) {
		t.Errorf("DistanceTo: got %v, want 5", d)
	}
}
