// Package codepanel serves the static source listings shown next to the
// visualization and renders them with the active line marked.
package codepanel

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSnippet       = errors.New("codepanel: no listing for algorithm")
	ErrUnknownLanguage = errors.New("codepanel: unknown language")
)

type Language string

const (
	Cpp    Language = "cpp"
	Java   Language = "java"
	Python Language = "python"
)

var languages = []Language{Cpp, Java, Python}

func Languages() []Language {
	return append([]Language(nil), languages...)
}

// Label is the panel header for the language.
func (l Language) Label() string {
	if l == Cpp {
		return "C++"
	}
	return strings.ToUpper(string(l))
}

// Next cycles cpp → java → python → cpp.
func (l Language) Next() Language {
	for i, lang := range languages {
		if lang == l {
			return languages[(i+1)%len(languages)]
		}
	}
	return Cpp
}

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpp", "c++":
		return Cpp, nil
	case "java":
		return Java, nil
	case "python", "py":
		return Python, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Line numbers in these listings are the ones the generators report.
var snippets = map[string]map[Language]string{
	"bubble_sort": {
		Cpp: `void bubbleSort(int arr[], int n) {
  for (int i = 0; i < n-1; i++) {
    for (int j = 0; j < n-i-1; j++) {
      if (arr[j] > arr[j+1]) {
        swap(arr[j], arr[j+1]);
      }
    }
  }
}`,
		Java: `public void bubbleSort(int[] arr) {
  int n = arr.length;
  for (int i = 0; i < n-1; i++) {
    for (int j = 0; j < n-i-1; j++) {
      if (arr[j] > arr[j+1]) {
        int temp = arr[j];
        arr[j] = arr[j+1];
        arr[j+1] = temp;
      }
    }
  }
}`,
		Python: `def bubble_sort(arr):
    n = len(arr)
    for i in range(n):
        for j in range(0, n-i-1):
            if arr[j] > arr[j+1]:
                arr[j], arr[j+1] = arr[j+1], arr[j]`,
	},
	"binary_search": {
		Cpp: `int binarySearch(int arr[], int l, int r, int x) {
  while (l <= r) {
    int m = l + (r - l) / 2;
    if (arr[m] == x) return m;
    if (arr[m] < x) l = m + 1;
    else r = m - 1;
  }
  return -1;
}`,
		Java: `int binarySearch(int arr[], int x) {
  int l = 0, r = arr.length - 1;
  while (l <= r) {
    int m = l + (r - l) / 2;
    if (arr[m] == x) return m;
    if (arr[m] < x) l = m + 1;
    else r = m - 1;
  }
  return -1;
}`,
		Python: `def binary_search(arr, x):
    l, r = 0, len(arr) - 1
    while l <= r:
        m = l + (r - l) // 2
        if arr[m] == x: return m
        if arr[m] < x: l = m + 1
        else: r = m - 1
    return -1`,
	},
}

// Snippet returns the listing for an algorithm id in lang.
func Snippet(algorithm string, lang Language) (string, error) {
	byLang, ok := snippets[algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoSnippet, algorithm)
	}
	code, ok := byLang[lang]
	if !ok || code == "" {
		return "", fmt.Errorf("%w: %s (%s)", ErrNoSnippet, algorithm, lang)
	}
	return code, nil
}
