package cpu

import (
	"runtime"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sys/cpu"
)

// Features lists the vector instruction set extensions of the host CPU.
type Features struct {
	Arch       string
	Extensions []string
}

// String returns a compact description such as "amd64 [sse2 avx2 fma]".
func (f Features) String() string {
	if len(f.Extensions) == 0 {
		return f.Arch
	}
	return f.Arch + " [" + strings.Join(f.Extensions, " ") + "]"
}

// Has reports whether ext was detected.
func (f Features) Has(ext string) bool {
	return lo.Contains(f.Extensions, ext)
}

// DetectFeatures queries golang.org/x/sys/cpu for the current machine.
func DetectFeatures() Features {
	f := Features{Arch: runtime.GOARCH}

	add := func(ok bool, name string) {
		if ok {
			f.Extensions = append(f.Extensions, name)
		}
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "neon")
		add(cpu.ARM64.HasFPHP, "fp16")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}

	return f
}
