package diag

import "strings"

// Categories lists every category a check may emit. --filter= with an empty
// value prints this list.
var Categories = []string{
	"build/c++11",
	"build/c++17",
	"build/deprecated",
	"build/endif_comment",
	"build/explicit_make_pair",
	"build/forward_decl",
	"build/header_guard",
	"build/include",
	"build/include_subdir",
	"build/include_alpha",
	"build/include_order",
	"build/include_what_you_use",
	"build/namespaces_headers",
	"build/namespaces_literals",
	"build/namespaces",
	"build/printf_format",
	"build/storage_class",
	"legal/copyright",
	"readability/alt_tokens",
	"readability/braces",
	"readability/casting",
	"readability/check",
	"readability/constructors",
	"readability/fn_size",
	"readability/inheritance",
	"readability/multiline_comment",
	"readability/multiline_string",
	"readability/namespace",
	"readability/nolint",
	"readability/nul",
	"readability/strings",
	"readability/todo",
	"readability/utf8",
	"runtime/arrays",
	"runtime/casting",
	"runtime/explicit",
	"runtime/int",
	"runtime/init",
	"runtime/invalid_increment",
	"runtime/member_string_references",
	"runtime/memset",
	"runtime/operator",
	"runtime/printf",
	"runtime/printf_format",
	"runtime/references",
	"runtime/string",
	"runtime/threadsafe_fn",
	"runtime/vlog",
	"whitespace/blank_line",
	"whitespace/braces",
	"whitespace/comma",
	"whitespace/comments",
	"whitespace/empty_conditional_body",
	"whitespace/empty_if_body",
	"whitespace/empty_loop_body",
	"whitespace/end_of_line",
	"whitespace/ending_newline",
	"whitespace/forcolon",
	"whitespace/indent",
	"whitespace/indent_namespace",
	"whitespace/line_length",
	"whitespace/newline",
	"whitespace/operators",
	"whitespace/parens",
	"whitespace/semicolon",
	"whitespace/tab",
	"whitespace/todo",
}

// LegacyCategories are no longer emitted but may still appear in NOLINT.
var LegacyCategories = []string{
	"build/class",
	"readability/streams",
	"readability/function",
}

// otherToolPrefixes belong to tools sharing the NOLINT syntax (clang-tidy).
var otherToolPrefixes = []string{
	"clang-analyzer-",
	"abseil-",
	"altera-",
	"android-",
	"boost-",
	"bugprone-",
	"cert-",
	"concurrency-",
	"cppcoreguidelines-",
	"darwin-",
	"fuchsia-",
	"google-",
	"hicpp-",
	"linuxkernel-",
	"llvm-",
	"llvmlibc-",
	"misc-",
	"modernize-",
	"mpi-",
	"objc-",
	"openmp-",
	"performance-",
	"portability-",
	"readability-",
	"zircon-",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsCategory reports whether c is a known category.
func IsCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}

// IsLegacyCategory reports whether c is a retired category.
func IsLegacyCategory(c string) bool {
	for _, l := range LegacyCategories {
		if l == c {
			return true
		}
	}
	return false
}

// IsOtherToolCategory reports whether c belongs to another linter.
func IsOtherToolCategory(c string) bool {
	for _, p := range otherToolPrefixes {
		if strings.HasPrefix(c, p) {
			return true
		}
	}
	return false
}
