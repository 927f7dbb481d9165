package dom

import "testing"

func TestCharacterData_UTF16Offsets(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.AsNode().AppendChild(div.AsNode())

	// U+1F600 (grinning face) is one code point but two UTF-16 code units.
	text := (*Text)(doc.CreateTextNode("a\U0001F600b"))
	div.AsNode().AppendChild(text.AsNode())

	if got := text.Length(); got != 4 {
		t.Errorf("Length() = %d, want 4", got)
	}
	if got := text.SubstringData(1, 2); got != "\U0001F600" {
		t.Errorf("SubstringData(1, 2) = %q, want emoji", got)
	}

	text.DeleteData(1, 2)
	if got := text.Data(); got != "ab" {
		t.Errorf("Data() after DeleteData = %q, want \"ab\"", got)
	}
}

func TestCharacterData_ReplaceDataNotifiesLiveRange(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.AsNode().AppendChild(div.AsNode())

	comment := (*Comment)(doc.CreateComment("hello world"))
	div.AsNode().AppendChild(comment.AsNode())

	r := doc.CreateRange()
	if err := r.SetStart(comment.AsNode(), 8); err != nil {
		t.Fatalf("SetStart failed: %v", err)
	}
	if err := r.SetEnd(comment.AsNode(), 8); err != nil {
		t.Fatalf("SetEnd failed: %v", err)
	}

	comment.ReplaceData(0, 5, "hi")

	if got := r.StartOffset(); got != 5 {
		t.Errorf("StartOffset after ReplaceData = %d, want 5 (boundary shifted by delta)", got)
	}
	if got := comment.Data(); got != "hi world" {
		t.Errorf("Data() after ReplaceData = %q, want \"hi world\"", got)
	}
}

func TestCharacterData_AppendInsertRoundTrip(t *testing.T) {
	doc := NewXMLDocument()
	cdata, err := doc.CreateCDATASectionWithError("abc")
	if err != nil {
		t.Fatalf("CreateCDATASectionWithError failed: %v", err)
	}
	section := (*CDATASection)(cdata)

	section.AppendData("def")
	section.InsertData(3, "-")
	if got := section.Data(); got != "abc-def" {
		t.Errorf("Data() = %q, want \"abc-def\"", got)
	}

	pi := (*ProcessingInstruction)(doc.CreateProcessingInstruction("xml-stylesheet", "type=\"text/css\""))
	pi.AppendData(" href=\"a.css\"")
	if got := pi.Length(); got != UTF16Length(pi.Data()) {
		t.Errorf("Length() = %d, want %d", got, UTF16Length(pi.Data()))
	}
}

func TestCharacterData_RemoveDetachesFromParent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.AsNode().AppendChild(div.AsNode())

	comment := (*Comment)(doc.CreateComment("note"))
	div.AsNode().AppendChild(comment.AsNode())

	comment.Remove()

	if comment.AsNode().ParentNode() != nil {
		t.Error("Remove should detach the comment from its parent")
	}
	if div.AsNode().FirstChild() != nil {
		t.Error("div should have no children after Remove")
	}
}
