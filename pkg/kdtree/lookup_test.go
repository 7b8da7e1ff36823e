//go:build go1.21

package kdtree_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/kdtree/pkg/kdtree"
	"github.com/flier/kdtree/pkg/vec"
)

func TestTree_Contains(t *testing.T) {
	Convey("Given a tree over a random cloud", t, func() {
		rng := rand.New(rand.NewSource(7))

		points := make([]vec.V3, 300)
		for i := range points {
			points[i] = vec.New(rng.Float64(), rng.Float64(), rng.Float64())
		}

		tree, err := kdtree.New(points)
		So(err, ShouldBeNil)

		Convey("Then every built point is a member", func() {
			for i := 0; i < tree.Len(); i++ {
				So(tree.Contains(tree.At(i)), ShouldBeTrue)
			}
		})

		Convey("Then perturbed points are not members", func() {
			for i := 0; i < tree.Len(); i += 29 {
				p := tree.At(i)
				So(tree.Contains(vec.New(p.X+1e-9, p.Y, p.Z)), ShouldBeFalse)
			}
		})

		Convey("Then IndexOf agrees with the store", func() {
			for i := 0; i < tree.Len(); i += 13 {
				at, ok := tree.IndexOf(tree.At(i))

				So(ok, ShouldBeTrue)
				So(tree.At(at), ShouldEqual, tree.At(i))
			}
		})
	})
}

func TestTree_IndexOf_Duplicates(t *testing.T) {
	Convey("Given duplicate points", t, func() {
		tree, err := kdtree.New([]vec.V3{
			vec.New(1, 1, 1),
			vec.New(1, 1, 1),
			vec.New(1, 1, 1),
		})
		So(err, ShouldBeNil)

		Convey("Then IndexOf reports the lowest store index", func() {
			at, ok := tree.IndexOf(vec.New(1, 1, 1))

			So(ok, ShouldBeTrue)
			So(at, ShouldEqual, 0)
		})
	})
}

func TestTree_Lookup_Empty(t *testing.T) {
	Convey("Given an empty tree", t, func() {
		tree, err := kdtree.New(nil)
		So(err, ShouldBeNil)

		Convey("Then no point is a member", func() {
			So(tree.Contains(vec.New(0, 0, 0)), ShouldBeFalse)

			_, ok := tree.IndexOf(vec.New(0, 0, 0))
			So(ok, ShouldBeFalse)
		})
	})
}
