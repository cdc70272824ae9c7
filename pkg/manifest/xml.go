package manifest

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// XML layout:
//
//	<manifest>
//	  <document title="Tower_Central" path="/p/Tower_Central.rvt"/>
//	  <links>
//	    <link id="1" name="Site-RVT-3-Linked.rvt" path="..." loaded="true"/>
//	  </links>
//	  <open_documents>
//	    <document title="Site-RVT-3-Linked" workshared="true">
//	      <workset id="2" name="Topography" kind="user" open="false"/>
//	    </document>
//	  </open_documents>
//	</manifest>

const xmlRoot = "manifest"

func decodeXML(data []byte, m *Manifest) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return err
	}
	root := doc.SelectElement(xmlRoot)
	if root == nil {
		return fmt.Errorf("missing <%s> root element", xmlRoot)
	}

	if el := root.SelectElement("document"); el != nil {
		m.Document = DocumentRecord{
			Title: el.SelectAttrValue("title", ""),
			Path:  el.SelectAttrValue("path", ""),
		}
	}

	if links := root.SelectElement("links"); links != nil {
		for _, el := range links.SelectElements("link") {
			loaded, err := boolAttr(el, "loaded")
			if err != nil {
				return err
			}
			nested, err := boolAttr(el, "nested")
			if err != nil {
				return err
			}
			m.Links = append(m.Links, LinkRecord{
				ID:     el.SelectAttrValue("id", ""),
				Name:   el.SelectAttrValue("name", ""),
				Path:   el.SelectAttrValue("path", ""),
				Loaded: loaded,
				Nested: nested,
			})
		}
	}

	if docs := root.SelectElement("open_documents"); docs != nil {
		for _, el := range docs.SelectElements("document") {
			shared, err := boolAttr(el, "workshared")
			if err != nil {
				return err
			}
			od := OpenDocument{Title: el.SelectAttrValue("title", ""), Workshared: shared}
			for _, wsEl := range el.SelectElements("workset") {
				ws, err := decodeWorkset(wsEl)
				if err != nil {
					return err
				}
				od.Worksets = append(od.Worksets, ws)
			}
			m.OpenDocuments = append(m.OpenDocuments, od)
		}
	}
	return nil
}

func decodeWorkset(el *etree.Element) (WorksetRecord, error) {
	id, err := strconv.Atoi(el.SelectAttrValue("id", "0"))
	if err != nil {
		return WorksetRecord{}, fmt.Errorf("workset id: %w", err)
	}
	open, err := boolAttr(el, "open")
	if err != nil {
		return WorksetRecord{}, err
	}
	return WorksetRecord{
		ID:   id,
		Name: el.SelectAttrValue("name", ""),
		Kind: el.SelectAttrValue("kind", ""),
		Open: open,
	}, nil
}

func boolAttr(el *etree.Element, key string) (bool, error) {
	v := el.SelectAttrValue(key, "")
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("<%s %s=%q>: %w", el.Tag, key, v, err)
	}
	return b, nil
}

func encodeXML(m *Manifest) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(xmlRoot)

	docEl := root.CreateElement("document")
	docEl.CreateAttr("title", m.Document.Title)
	docEl.CreateAttr("path", m.Document.Path)

	links := root.CreateElement("links")
	for _, l := range m.Links {
		el := links.CreateElement("link")
		el.CreateAttr("id", l.ID)
		el.CreateAttr("name", l.Name)
		if l.Path != "" {
			el.CreateAttr("path", l.Path)
		}
		el.CreateAttr("loaded", strconv.FormatBool(l.Loaded))
		if l.Nested {
			el.CreateAttr("nested", "true")
		}
	}

	docs := root.CreateElement("open_documents")
	for _, od := range m.OpenDocuments {
		el := docs.CreateElement("document")
		el.CreateAttr("title", od.Title)
		el.CreateAttr("workshared", strconv.FormatBool(od.Workshared))
		for _, ws := range od.Worksets {
			wsEl := el.CreateElement("workset")
			wsEl.CreateAttr("id", strconv.Itoa(ws.ID))
			wsEl.CreateAttr("name", ws.Name)
			wsEl.CreateAttr("kind", ws.Kind)
			wsEl.CreateAttr("open", strconv.FormatBool(ws.Open))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
