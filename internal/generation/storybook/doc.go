// Package storybook produces illustrated children's storybooks in two
// stages. Stage 1 asks a text model for the story as JSON. Stage 2 asks an
// image model for one illustration per page.
//
// Stage 1 fails fast: without a usable story no image call is made. Stage 2
// never fails as a whole. A page whose illustration could not be produced
// by any configured image model keeps its text and gets no image.
package storybook
