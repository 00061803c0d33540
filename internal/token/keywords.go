package token

import "strings"

type trieNode struct {
	children map[string]*trieNode
	kind     Kind
	isEnd    bool
}

var keywordRoot = &trieNode{children: map[string]*trieNode{}}
var keywordTexts = map[Kind]string{}

func addKeyword(kind Kind, phrase string) {
	node := keywordRoot
	for _, w := range strings.Fields(phrase) {
		child, ok := node.children[w]
		if !ok {
			child = &trieNode{children: map[string]*trieNode{}}
			node.children[w] = child
		}
		node = child
	}
	node.isEnd = true
	node.kind = kind
	keywordTexts[kind] = phrase
}

func init() {
	single := map[Kind]string{
		STORE: "store", AS: "as", CHANGE: "change", SET: "set", TO: "to",
		CHECK: "check", IF: "if", OTHERWISE: "otherwise", END: "end",
		COUNT: "count", FROM: "from", BY: "by", FOR: "for", EACH: "each",
		IN: "in", WHILE: "while", REPEAT: "repeat", UNTIL: "until",
		FOREVER: "forever", BREAK: "break", LOOP: "loop", SKIP: "skip",
		DEFINE: "define", ACTION: "action", CALLED: "called", NEEDS: "needs",
		AND: "and", OR: "or", WITH: "with", DISPLAY: "display", TRY: "try",
		WHEN: "when", OPEN: "open", FILE: "file", AT: "at", CLOSE: "close",
		WAIT: "wait", WRITE: "write", APPEND: "append", CONTENT: "content",
		INTO: "into", READ: "read", TRIGGER: "trigger", ON: "on",
		CREATE: "create", IS: "is", NOT: "not", PLUS: "plus", MINUS: "minus",
		TIMES: "times", MOD: "mod", TRUE: "true", FALSE: "false",
		NOTHING: "nothing",
	}
	for kind, text := range single {
		addKeyword(kind, text)
	}

	multi := map[Kind]string{
		END_ACTION:      "end action",
		END_CHECK:       "end check",
		END_COUNT:       "end count",
		END_FOR:         "end for",
		END_WHILE:       "end while",
		END_REPEAT:      "end repeat",
		END_TRY:         "end try",
		END_ON:          "end on",
		DIVIDED_BY:      "divided by",
		IS_EQUAL_TO:     "is equal to",
		IS_GREATER_THAN: "is greater than",
		IS_LESS_THAN:    "is less than",
		GIVE_BACK:       "give back",
		EXIT_LOOP:       "exit loop",
		FOR_EACH:        "for each",
		REPEAT_WHILE:    "repeat while",
		REPEAT_UNTIL:    "repeat until",
		REPEAT_FOREVER:  "repeat forever",
		DEFINE_ACTION:   "define action",
		WAIT_FOR:        "wait for",
	}
	for kind, text := range multi {
		addKeyword(kind, text)
	}
}

// KeywordText returns the canonical phrase text for a keyword kind.
func KeywordText(k Kind) (string, bool) {
	t, ok := keywordTexts[k]
	return t, ok
}

// MatchKeywordAt walks the keyword trie word by word, asking peekWord for
// the i-th word starting at the current position (0-based, not yet
// consumed). It returns the longest matching keyword phrase: the greedy
// walk keeps going past a matched node as long as children exist, but
// only the deepest isEnd node found along the path wins — so "end" alone
// still matches plain END even if "end" is also a prefix of "end action".
func MatchKeywordAt(peekWord func(n int) (string, bool)) (kind Kind, consumedWords int, ok bool) {
	node := keywordRoot
	matched := false
	var lastKind Kind
	lastConsumed := 0

	for i := 0; ; i++ {
		word, exists := peekWord(i)
		if !exists {
			break
		}
		child, has := node.children[word]
		if !has {
			break
		}
		node = child
		if node.isEnd {
			lastKind = node.kind
			lastConsumed = i + 1
			matched = true
		}
	}

	if !matched {
		return 0, 0, false
	}
	return lastKind, lastConsumed, true
}
