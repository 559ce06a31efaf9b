package extensions

import (
	"fmt"
	"strings"
	"sync"

	"github.com/m1gwings/treedrawer/tree"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

// TreeObserver records the lifetime hierarchy as it is built and renders it
// as a drawn tree. The core stores only termination callbacks, never child
// pointers, so observing attachments is the only way to see the shape of a
// running hierarchy.
//
// Usage:
//
//	obs := extensions.NewTreeObserver()
//	app := lifetime.NewRoot(lifetime.WithName("app"), lifetime.WithObserver(obs))
//	pool := lifetime.NewNested(app.Outer(), lifetime.WithName("pool"))
//	fmt.Println(obs.Render())
//
// Terminated definitions stay in the rendering, marked with a suffix, so the
// picture remains useful after teardown.
type TreeObserver struct {
	lifetime.BaseObserver

	mu         sync.Mutex
	created    []*lifetime.Definition
	parents    map[*lifetime.Definition]*lifetime.Definition
	terminated map[*lifetime.Definition]bool
}

// NewTreeObserver creates a new tree observer
func NewTreeObserver() *TreeObserver {
	return &TreeObserver{
		BaseObserver: lifetime.NewBaseObserver("treeview"),
		parents:      make(map[*lifetime.Definition]*lifetime.Definition),
		terminated:   make(map[*lifetime.Definition]bool),
	}
}

func (o *TreeObserver) OnCreate(d *lifetime.Definition) {
	o.mu.Lock()
	o.created = append(o.created, d)
	o.mu.Unlock()
}

func (o *TreeObserver) OnAttach(parent, child *lifetime.Definition) {
	o.mu.Lock()
	o.parents[child] = parent
	o.mu.Unlock()
}

func (o *TreeObserver) OnTerminate(d *lifetime.Definition) {
	o.mu.Lock()
	o.terminated[d] = true
	o.mu.Unlock()
}

// Render draws every recorded hierarchy, one tree per root, in creation
// order. Definitions the observer never saw (created without it) do not
// appear.
func (o *TreeObserver) Render() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	var sb strings.Builder
	for _, d := range o.created {
		if _, nested := o.parents[d]; nested {
			continue
		}
		t := tree.NewTree(tree.NodeString(o.label(d)))
		o.addChildren(t, d)
		sb.WriteString(fmt.Sprint(t))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (o *TreeObserver) addChildren(node *tree.Tree, d *lifetime.Definition) {
	i := 0
	for _, c := range o.created {
		if o.parents[c] != d {
			continue
		}
		node.AddChild(tree.NodeString(o.label(c)))
		childNode, err := node.Child(i)
		i++
		if err != nil {
			continue
		}
		o.addChildren(childNode, c)
	}
}

func (o *TreeObserver) label(d *lifetime.Definition) string {
	if o.terminated[d] {
		return d.Name() + " [terminated]"
	}
	return d.Name()
}
