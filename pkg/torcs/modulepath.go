//go:build cgo

package torcs

import (
	"errors"
	"path/filepath"
	"unsafe"
)

/*
#cgo windows LDFLAGS: -lpsapi
#cgo linux LDFLAGS: -ldl

#ifdef _WIN32
#define WIN32_LEAN_AND_MEAN
#include <windows.h>
#include <libloaderapi.h>
#include <stdlib.h>

char* s191857ModulePath() {
    HMODULE hModule = NULL;
    if (!GetModuleHandleExA(GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS |
                           GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT,
                           (LPCTSTR)s191857ModulePath,
                           &hModule)) {
        return NULL;
    }

    DWORD size = MAX_PATH;
    char* buffer = NULL;
    while (1) {
        char* grown = (char*)realloc(buffer, size);
        if (!grown) {
            free(buffer);
            return NULL;
        }
        buffer = grown;
        DWORD n = GetModuleFileNameA(hModule, buffer, size);
        if (n == 0) {
            free(buffer);
            return NULL;
        }
        if (n < size) {
            return buffer;
        }
        size *= 2;
    }
}

#else

#define _GNU_SOURCE
#include <dlfcn.h>
#include <stdlib.h>
#include <string.h>

char* s191857ModulePath() {
    Dl_info info;
    if (dladdr((void*)s191857ModulePath, &info) == 0 || info.dli_fname == NULL) {
        return NULL;
    }
    return strdup(info.dli_fname);
}

#endif
*/
import "C"

// ModulePath returns the absolute path of the shared library (or executable,
// in tests) this code was loaded from.
func ModulePath() (string, error) {
	p := C.s191857ModulePath()
	if p == nil {
		return "", errors.New("module path lookup failed")
	}
	defer C.free(unsafe.Pointer(p))
	return filepath.Abs(C.GoString(p))
}
