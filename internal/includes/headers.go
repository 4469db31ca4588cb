package includes

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

// cppHeaders are the standard C++ headers, including the C++ wrappers of
// the C library and a few pre-standard STL headers.
var cppHeaders = set(
	// legacy
	"algobase.h", "algo.h", "alloc.h", "builtinbuf.h", "bvector.h",
	"defalloc.h", "deque.h", "editbuf.h", "fstream.h", "function.h",
	"hash_map", "hash_map.h", "hash_set", "hash_set.h", "hashtable.h",
	"heap.h", "indstream.h", "iomanip.h", "iostream.h", "istream.h",
	"iterator.h", "list.h", "map.h", "multimap.h", "multiset.h",
	"ostream.h", "pair.h", "parsestream.h", "pfstream.h", "procbuf.h",
	"pthread_alloc", "pthread_alloc.h", "rope", "rope.h", "ropeimpl.h",
	"set.h", "slist", "slist.h", "stack.h", "stdiostream.h",
	"stl_alloc.h", "stl_relops.h", "streambuf.h", "stream.h", "strfile.h",
	"strstream.h", "tempbuf.h", "tree.h", "type_traits.h", "vector.h",
	// C++98 / C++11
	"algorithm", "array", "atomic", "bitset", "chrono", "codecvt", "complex",
	"condition_variable", "deque", "exception", "forward_list", "fstream",
	"functional", "future", "initializer_list", "iomanip", "ios", "iosfwd",
	"iostream", "istream", "iterator", "limits", "list", "locale", "map",
	"memory", "mutex", "new", "numeric", "ostream", "queue", "random",
	"ratio", "regex", "scoped_allocator", "set", "sstream", "stack",
	"stdexcept", "streambuf", "string", "strstream", "system_error",
	"thread", "tuple", "typeindex", "typeinfo", "type_traits", "unordered_map",
	"unordered_set", "utility", "valarray", "vector",
	// C++14
	"shared_mutex",
	// C++17
	"any", "charconv", "execution", "filesystem", "memory_resource",
	"optional", "string_view", "variant",
	// C++20
	"barrier", "bit", "compare", "concepts", "coroutine", "format", "latch",
	"numbers", "ranges", "semaphore", "source_location", "span",
	"stop_token", "syncstream", "version",
	// C++23
	"expected", "flat_map", "flat_set", "generator", "mdspan", "print",
	"spanstream", "stacktrace", "stdfloat",
	// C library facilities
	"cassert", "ccomplex", "cctype", "cerrno", "cfenv", "cfloat",
	"cinttypes", "ciso646", "climits", "clocale", "cmath", "csetjmp",
	"csignal", "cstdalign", "cstdarg", "cstdbool", "cstddef", "cstdint",
	"cstdio", "cstdlib", "cstring", "ctgmath", "ctime", "cuchar", "cwchar",
	"cwctype",
)

// cHeaders are the C standard, POSIX and common GNU/Linux headers.
var cHeaders = set(
	// C11
	"assert.h", "complex.h", "ctype.h", "errno.h", "fenv.h", "float.h",
	"inttypes.h", "iso646.h", "limits.h", "locale.h", "math.h", "setjmp.h",
	"signal.h", "stdalign.h", "stdarg.h", "stdatomic.h", "stdbool.h",
	"stddef.h", "stdint.h", "stdio.h", "stdlib.h", "stdnoreturn.h",
	"string.h", "tgmath.h", "threads.h", "time.h", "uchar.h", "wchar.h",
	"wctype.h",
	// C23
	"stdbit.h", "stdckdint.h",
	// POSIX
	"aio.h", "arpa/inet.h", "cpio.h", "dirent.h", "dlfcn.h", "fcntl.h",
	"fmtmsg.h", "fnmatch.h", "ftw.h", "glob.h", "grp.h", "iconv.h",
	"langinfo.h", "libgen.h", "monetary.h", "mqueue.h", "ndbm.h",
	"net/if.h", "netdb.h", "netinet/in.h", "netinet/tcp.h", "nl_types.h",
	"poll.h", "pthread.h", "pwd.h", "regex.h", "sched.h", "search.h",
	"semaphore.h", "spawn.h", "strings.h", "stropts.h", "syslog.h",
	"tar.h", "termios.h", "trace.h", "ulimit.h", "unistd.h", "utime.h",
	"utmpx.h", "wordexp.h",
	"sys/ipc.h", "sys/mman.h", "sys/msg.h", "sys/resource.h",
	"sys/select.h", "sys/sem.h", "sys/shm.h", "sys/socket.h", "sys/stat.h",
	"sys/statvfs.h", "sys/time.h", "sys/times.h", "sys/types.h",
	"sys/uio.h", "sys/un.h", "sys/utsname.h", "sys/wait.h",
	// GNU
	"a.out.h", "aliases.h", "alloca.h", "ar.h", "argp.h", "argz.h",
	"byteswap.h", "crypt.h", "endian.h", "envz.h", "err.h", "error.h",
	"execinfo.h", "fpu_control.h", "fstab.h", "fts.h", "getopt.h",
	"gshadow.h", "ieee754.h", "ifaddrs.h", "libintl.h", "mcheck.h",
	"malloc.h", "mntent.h", "obstack.h", "paths.h", "printf.h", "pty.h",
	"resolv.h", "shadow.h", "sgtty.h", "stab.h", "stdio_ext.h",
	"sysexits.h", "termio.h", "thread_db.h", "ttyent.h", "ustat.h",
	"utmp.h", "values.h", "wait.h", "xlocale.h",
	// hardware specific
	"elf.h", "link.h", "ucontext.h", "fpu_control.h",
)

// cStandardHeaderFolders hold C headers used so widely in C++ that they
// rank with the C standard library.
var cStandardHeaderFolders = []string{
	// standard C library
	"sys",
	// glibc
	"arpa", "asm-generic", "bits", "gnu", "net", "netinet", "protocols",
	"rpc", "rpcsvc", "scsi",
	// linux kernel
	"drm", "linux", "misc", "mtd", "rdma", "sound", "video", "xen",
}
