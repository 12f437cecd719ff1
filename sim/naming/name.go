package naming

import (
	"strconv"
	"strings"
)

// A Name is a hierarchical name made of tokens separated by dots, such as
// "Cache.CPUSide[0]".
type Name struct {
	Tokens []NameToken
}

// NameToken is one level of a Name.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName parses a name string.
func ParseName(sname string) Name {
	tokens := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(tokens))}

	for i, token := range tokens {
		name.Tokens[i] = parseNameToken(token)
	}

	return name
}

func parseNameToken(token string) NameToken {
	bracketMustMatch(token)

	ts := strings.Split(token, "[")
	indices := make([]int, len(ts)-1)

	for i := 1; i < len(ts); i++ {
		if !strings.HasSuffix(ts[i], "]") {
			panic("Name index must be followed by ]")
		}

		index, err := strconv.Atoi(ts[i][0 : len(ts[i])-1])
		if err != nil {
			panic("Name index must be integer")
		}

		indices[i-1] = index
	}

	return NameToken{ElemName: ts[0], Index: indices}
}

func bracketMustMatch(name string) {
	open := 0

	for _, c := range name {
		switch c {
		case '[':
			open++
		case ']':
			open--
			if open < 0 {
				panic("Name bracket must match")
			}
		}
	}

	if open != 0 {
		panic("Name bracket must match")
	}
}

// NameMustBeValid panics if the name does not follow the naming convention:
// dot-separated, non-empty, capitalized CamelCase elements, with square
// brackets for elements of a series.
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("Name " + name + " is not valid: " + r.(string))
		}
	}()

	n := ParseName(name)
	for _, token := range n.Tokens {
		tokenMustBeValid(token)
	}
}

func tokenMustBeValid(token NameToken) {
	if token.ElemName == "" {
		panic("Name element must not be empty")
	}

	for _, c := range []string{"_", "\"", "'", "-", " "} {
		if strings.Contains(token.ElemName, c) {
			panic("Name element must not contain " + c)
		}
	}

	if token.ElemName[0] < 'A' || token.ElemName[0] > 'Z' {
		panic("Name element must start with a capital letter")
	}
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex joins a parent name and an indexed element name.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
